// Package main provides the matprop binary entry point. Matprop loads
// physical-property documents, evaluates properties at query points and
// converts between physical units.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vk/matprop/internal/config"
	"github.com/vk/matprop/internal/ctxlog"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the CLI for easier testing: output and arguments are
// injected, and the configured logger travels in the command context.
func run(outW, errW io.Writer, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	logger, err := cfg.Logger(errW)
	if err != nil {
		return err
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)

	root := rootCmd(outW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func rootCmd(outW io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "matprop",
		Short:         "Load, evaluate and convert physical-property documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)

	root.AddCommand(listCmd(outW))
	root.AddCommand(evalCmd(outW))
	root.AddCommand(convertCmd(outW))
	root.AddCommand(fmtCmd(outW))
	return root
}
