package source

import (
	"fmt"
)

// Span identifies a byte range inside a source file. The zero value carries
// File 0, which names the first registered file; location-less spans must be
// built with NoSpan instead.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// NoSpan returns the sentinel span for diagnostics without a source
// location. Its file is NoFileID and never resolves to a registered path.
func NoSpan() Span {
	return Span{File: NoFileID}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens the span to include other. Spans in different files are left
// untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
