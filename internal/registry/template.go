package registry

// TemplateID identifies a generic-container template.
type TemplateID uint8

const (
	// TemplateInvalid marks the absence of a template.
	TemplateInvalid TemplateID = iota
	// TemplateArray is the growable-array-of-T template.
	TemplateArray
)

func (t TemplateID) String() string {
	switch t {
	case TemplateArray:
		return "Array"
	default:
		return "invalid"
	}
}

// Header names an embedded runtime support header an instantiation pulls in.
type Header uint8

const (
	// HeaderNumbers is the numeric runtime (numbers.h).
	HeaderNumbers Header = iota
	// HeaderStrings is the byte-string runtime (strings.h).
	HeaderStrings
)

// FileName returns the include name of the header.
func (h Header) FileName() string {
	switch h {
	case HeaderNumbers:
		return "numbers.h"
	case HeaderStrings:
		return "strings.h"
	}
	return ""
}
