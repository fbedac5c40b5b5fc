package cli

import (
	"github.com/spf13/cobra"

	"zinc/src/compiler"
	"zinc/src/util"
)

func newRunCommand() *cobra.Command {
	var optimize bool

	cmd := &cobra.Command{
		Use:   "run <input-file>",
		Short: "JIT-compile and execute a Zinc source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := util.ReadSource(args[0])
			if err != nil {
				return err
			}
			return compiler.RunJIT(src, optimize, nil)
		},
	}

	cmd.Flags().BoolVar(&optimize, "optimize", false, "enable LLVM optimizations")
	return cmd
}

func newExecCommand() *cobra.Command {
	var optimize bool

	cmd := &cobra.Command{
		Use:   "exec <code>",
		Short: "JIT-compile and execute inline Zinc source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compiler.RunJIT(args[0], optimize, nil)
		},
	}

	cmd.Flags().BoolVar(&optimize, "optimize", false, "enable LLVM optimizations")
	return cmd
}
