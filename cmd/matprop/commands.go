package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vk/matprop/internal/loader"
	"github.com/vk/matprop/internal/property"
	"github.com/vk/matprop/internal/units"
)

func listCmd(outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list <document>",
		Short: "List the properties declared in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadDocs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for i, doc := range docs {
				if len(docs) > 1 {
					fmt.Fprintf(outW, "document %d:\n", i+1)
				}
				for _, name := range doc.Properties() {
					p, _ := doc.Property(name)
					fmt.Fprintf(outW, "%s\t%s\t%s\n", name, variantName(p), resultUnit(p))
				}
			}
			return nil
		},
	}
}

func evalCmd(outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <document> <property> [name=value ...]",
		Short: "Evaluate a property at query points",
		Long: "Evaluate a property at query points. Arguments bind by name\n" +
			"(name=value) with comma-separated values for vector queries;\n" +
			"omitted arguments use the document defaults. Values are in SI\n" +
			"base units.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadDocs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p, err := findProperty(docs, args[1])
			if err != nil {
				return err
			}
			named, err := parseQuery(args[2:])
			if err != nil {
				return err
			}

			out, err := p.Eval(cmd.Context(), nil, named)
			if err != nil {
				return err
			}
			for _, v := range out {
				fmt.Fprintf(outW, "%g %s\n", v, resultUnit(p))
			}
			return nil
		},
	}
}

func convertCmd(outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <value> <from-unit> <to-unit>",
		Short: "Convert a value between units",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("value %q is not a number", args[0])
			}
			out, err := units.Default().To(v, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(outW, "%g %s\n", out, args[2])
			return nil
		},
	}
}

func fmtCmd(outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <document>",
		Short: "Reformat a document with normalized base units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader.New(units.Default())
			docs, err := l.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for i, doc := range docs {
				if i > 0 {
					fmt.Fprintln(outW, "---")
				}
				out, err := l.Dump(doc)
				if err != nil {
					return err
				}
				if _, err := outW.Write(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func loadDocs(ctx context.Context, path string) ([]*loader.Document, error) {
	return loader.New(units.Default()).Load(ctx, path)
}

func findProperty(docs []*loader.Document, name string) (property.Property, error) {
	for _, doc := range docs {
		if p, ok := doc.Property(name); ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no property %q in document", name)
}

// parseQuery converts name=value arguments into keyword bindings, with
// comma-separated values forming vector queries.
func parseQuery(args []string) (property.Named, error) {
	named := make(property.Named, len(args))
	for _, arg := range args {
		name, raw, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("query argument %q is not name=value", arg)
		}
		parts := strings.Split(raw, ",")
		vals := make(property.Value, len(parts))
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("query argument %q: %q is not a number", arg, part)
			}
			vals[i] = v
		}
		named[name] = vals
	}
	return named, nil
}

func variantName(p property.Property) string {
	switch p.(type) {
	case *property.Constant:
		return "constant"
	case *property.Table:
		return "table"
	case *property.Function:
		return "function"
	default:
		return "unknown"
	}
}

// resultUnit returns the base unit of a property's dependent value.
func resultUnit(p property.Property) string {
	switch v := p.(type) {
	case *property.Constant:
		return v.Unit()
	case *property.Table:
		u := v.Units()
		return u[len(u)-1]
	case *property.Function:
		u := v.Units()
		return u[len(u)-1]
	default:
		return ""
	}
}
