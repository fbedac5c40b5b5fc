package cli

import (
	"github.com/spf13/cobra"

	"zinc/src/compiler"
	"zinc/src/util"
)

// run-safe and exec-safe never touch LLVM: interpretation has no optimize
// flag to accept, matching spec.md's CLI surface exactly.

func newRunSafeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run-safe <input-file>",
		Short: "Interpret a Zinc source file, bypassing native codegen entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := util.ReadSource(args[0])
			if err != nil {
				return err
			}
			out, err := compiler.RunInterpreter(src)
			if err != nil {
				return err
			}
			printOutput(out)
			return nil
		},
	}
}

func newExecSafeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec-safe <code>",
		Short: "Interpret inline Zinc source, bypassing native codegen entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := compiler.RunInterpreter(args[0])
			if err != nil {
				return err
			}
			printOutput(out)
			return nil
		},
	}
}
