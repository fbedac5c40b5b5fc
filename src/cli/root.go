// Package cli wires the driver façade in src/compiler to five Cobra
// subcommands, the Go equivalent of the original implementation's clap
// Args/Commands enum in src/main.rs.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultOutputName is the executable name `build` writes when -o is
// omitted. Unlike the original, which picks between "bruh"/"bruh.exe" by
// target OS at compile time, this port only ever targets Unix toolchains
// (see src/link's documented Windows gap), so there is exactly one name.
const defaultOutputName = "zinc.out"

// NewRootCommand builds the zinc command tree: build, run, exec, run-safe,
// exec-safe.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "zinc",
		Short:         "Zinc compiler toolchain: native, JIT and interpreter backends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBuildCommand(),
		newRunCommand(),
		newExecCommand(),
		newRunSafeCommand(),
		newExecSafeCommand(),
	)
	return root
}

// printOutput writes s to stdout without the trailing newline cobra's own
// error printer would add, matching `print!("{}", ...)` in the original's
// run-safe/exec-safe handlers.
func printOutput(s string) {
	fmt.Print(s)
}
