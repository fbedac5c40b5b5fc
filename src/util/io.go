// io.go provides the small file-reading helper shared by the CLI
// subcommands that take a source file path.
//
// The teacher's own util.io additionally buffers concurrent assembly-text
// output from parallel worker goroutines (ListenWrite/Writer/Close) and
// reads from stdin with a timeout. Neither applies here: this compiler has
// no text-assembly backend to buffer, and spec.md section 6 defines no
// stdin-driven input mode, so only ReadSource survives, simplified to a
// synchronous read.

package util

import "os"

// ReadSource reads the source file at path.
func ReadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
