// Package runtimeembed provides the embedded C runtime sources the emitted
// code includes. The Go packages under internal/runtime carry the same
// semantics; these files are what actually ships next to the generated units.
package runtimeembed

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed native/*.h
var nativeRuntimeFS embed.FS

// NativeRuntimeFS exposes the embedded runtime sources.
func NativeRuntimeFS() fs.FS {
	return nativeRuntimeFS
}

// Header returns the contents of one embedded runtime header by its include
// name, e.g. "numbers.h".
func Header(name string) (string, error) {
	data, err := nativeRuntimeFS.ReadFile("native/" + name)
	if err != nil {
		return "", fmt.Errorf("runtime header %q: %w", name, err)
	}
	return string(data), nil
}
