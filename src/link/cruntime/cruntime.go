// Package cruntime embeds the small C runtime every natively linked Zinc
// executable is built against: the ten built-in functions (zinc_std_c.c)
// and the `main` trampoline that calls into the compiled zinc_main symbol
// (zinc_entry_c.c). The linker collaborator in src/link materializes both
// files into a temporary build directory before invoking the system
// linker, since `cc` needs them as files on disk, not in-memory bytes.
package cruntime

import _ "embed"

//go:embed zinc_std_c.c
var StdC []byte

//go:embed zinc_entry_c.c
var EntryC []byte
