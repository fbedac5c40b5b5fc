package cli

import (
	"github.com/spf13/cobra"

	"zinc/src/compiler"
)

func newBuildCommand() *cobra.Command {
	var outputFile string
	var optimize bool

	cmd := &cobra.Command{
		Use:   "build <input-file>",
		Short: "Compile a Zinc source file to a native executable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := outputFile
			if output == "" {
				output = defaultOutputName
			}
			return compiler.BuildExecutable(args[0], output, optimize)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output executable path (default \""+defaultOutputName+"\")")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "enable LLVM and C compiler optimizations")
	return cmd
}
