package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase(t *testing.T) {
	r := Default()

	t.Run("already base units pass through", func(t *testing.T) {
		v, u, err := r.Base(9.81, "m/s^2")
		require.NoError(t, err)
		assert.Equal(t, 9.81, v)
		assert.Equal(t, "m/s^2", u)
	})

	t.Run("prefixed units scale", func(t *testing.T) {
		v, u, err := r.Base(2.5, "kPa")
		require.NoError(t, err)
		assert.InDelta(t, 2500.0, v, 1e-9)
		assert.Equal(t, "kg/m/s^2", u)
	})

	t.Run("offset temperature converts to kelvin", func(t *testing.T) {
		v, u, err := r.Base(25, "degC")
		require.NoError(t, err)
		assert.InDelta(t, 298.15, v, 1e-9)
		assert.Equal(t, "K", u)
	})

	t.Run("idempotent on its own output", func(t *testing.T) {
		v1, u1, err := r.Base(11.3, "g/cm^3")
		require.NoError(t, err)

		v2, u2, err := r.Base(v1, u1)
		require.NoError(t, err)
		assert.Equal(t, v1, v2)
		assert.Equal(t, u1, u2)
	})

	t.Run("unknown symbol fails", func(t *testing.T) {
		_, _, err := r.Base(1, "florps")
		var uerr *UnitError
		require.ErrorAs(t, err, &uerr)
	})
}

func TestTo(t *testing.T) {
	r := Default()

	t.Run("round trip", func(t *testing.T) {
		cases := []struct {
			v        float64
			from, to string
		}{
			{12.7, "W/m/K", "Btu/h/ft/K"},
			{1.0, "g/cm^3", "kg/m^3"},
			{300.0, "K", "degF"},
			{101.325, "kPa", "psi"},
		}
		for _, tc := range cases {
			there, err := r.To(tc.v, tc.from, tc.to)
			require.NoError(t, err)
			back, err := r.To(there, tc.to, tc.from)
			require.NoError(t, err)
			assert.InDelta(t, tc.v, back, 1e-9, "round trip %s <-> %s", tc.from, tc.to)
		}
	})

	t.Run("offset scales convert affinely", func(t *testing.T) {
		v, err := r.To(212, "degF", "degC")
		require.NoError(t, err)
		assert.InDelta(t, 100.0, v, 1e-9)
	})

	t.Run("incompatible dimensions fail", func(t *testing.T) {
		_, err := r.To(1, "kg", "m")
		var uerr *UnitError
		require.ErrorAs(t, err, &uerr)
		assert.Contains(t, uerr.Error(), "incompatible")
	})

	t.Run("slice form", func(t *testing.T) {
		out, err := r.ToSlice([]float64{0, 100}, "degC", "K")
		require.NoError(t, err)
		assert.InDelta(t, 273.15, out[0], 1e-9)
		assert.InDelta(t, 373.15, out[1], 1e-9)
	})
}

func TestDisplay(t *testing.T) {
	r := Default()

	t.Run("curated dimension maps to preferred unit", func(t *testing.T) {
		v, u, err := r.Display(1.0, "g/cm^3")
		require.NoError(t, err)
		assert.Equal(t, "kg/m^3", u)
		assert.InDelta(t, 1000.0, v, 1e-9)
	})

	t.Run("resistivity keeps its compound name", func(t *testing.T) {
		_, u, err := r.Display(1.7e-8, "Ω m")
		require.NoError(t, err)
		assert.Equal(t, "Ω m", u)
	})

	t.Run("uncurated dimension passes through in base units", func(t *testing.T) {
		v, u, err := r.Display(3.0, "m/s")
		require.NoError(t, err)
		assert.Equal(t, "m/s", u)
		assert.Equal(t, 3.0, v)
	})

	t.Run("dimensionless round-trips through its unit name", func(t *testing.T) {
		v, u, err := r.Display(0.34, "")
		require.NoError(t, err)
		assert.Equal(t, "dimensionless", u)
		assert.Equal(t, 0.34, v)

		back, bu, err := r.Base(v, u)
		require.NoError(t, err)
		assert.Equal(t, "dimensionless", bu)
		assert.Equal(t, 0.34, back)
	})
}

func TestParse(t *testing.T) {
	r := Default()

	t.Run("grammar variants agree", func(t *testing.T) {
		specs := []string{"Ω m", "Ω·m", "Ω*m", "ohm m"}
		want, wantUnit, err := r.Base(1.0, specs[0])
		require.NoError(t, err)
		for _, spec := range specs[1:] {
			v, u, err := r.Base(1.0, spec)
			require.NoError(t, err)
			assert.Equal(t, want, v, spec)
			assert.Equal(t, wantUnit, u, spec)
		}
	})

	t.Run("thermal expansion cancels length", func(t *testing.T) {
		v, u, err := r.Base(16.0, "mm/mm/K")
		require.NoError(t, err)
		assert.Equal(t, "1/K", u)
		assert.InDelta(t, 16.0, v, 1e-12)
	})

	t.Run("offset unit in a compound is rejected", func(t *testing.T) {
		_, _, err := r.Base(1, "degC/m")
		var uerr *UnitError
		require.ErrorAs(t, err, &uerr)
	})

	t.Run("bad exponent is rejected", func(t *testing.T) {
		_, _, err := r.Base(1, "m^x")
		var uerr *UnitError
		require.ErrorAs(t, err, &uerr)
	})
}
