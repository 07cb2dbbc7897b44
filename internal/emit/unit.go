package emit

import (
	runtimeembed "iona/runtime"
)

// CompilationUnit is one generated output artifact: an ordered, deduplicated
// sequence of declarations in textual form, stamped with the provenance of
// the originating source artifact.
type CompilationUnit struct {
	// Provenance names the originating source artifact. Distinct units may
	// share a provenance label when the same source feeds several passes.
	Provenance string
	// Text is the complete unit, byte-for-byte deterministic for identical
	// input IR.
	Text string
	// Headers lists the embedded runtime headers the unit includes, in
	// include order.
	Headers []string
}

// SupportFiles returns the contents of every runtime header the unit
// includes, keyed by include name, so callers can write them next to the
// unit.
func (u *CompilationUnit) SupportFiles() (map[string]string, error) {
	files := make(map[string]string, len(u.Headers))
	for _, name := range u.Headers {
		content, err := runtimeembed.Header(name)
		if err != nil {
			return nil, err
		}
		files[name] = content
	}
	return files, nil
}
