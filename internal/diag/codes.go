package diag

import "fmt"

// Code identifies a diagnostic class. Backend codes live in the GEN block;
// runtime-limit codes in the RT block.
type Code uint16

const (
	CodeUnknown Code = iota

	// GEN block: lowering and emission.
	CodeUnregisteredInstantiation
	CodeUnloweredDeclaration
	CodeDuplicateVariantTag
	CodeUnsupportedPayloadType
	CodeDuplicateStructField

	// RT block: runtime-limit failures.
	CodeCapacityOverflow

	// IR block: fixture/manifest loading.
	CodeMalformedDeclaration
)

func (c Code) String() string {
	switch c {
	case CodeUnregisteredInstantiation:
		return "GEN001"
	case CodeUnloweredDeclaration:
		return "GEN002"
	case CodeDuplicateVariantTag:
		return "GEN003"
	case CodeUnsupportedPayloadType:
		return "GEN004"
	case CodeDuplicateStructField:
		return "GEN005"
	case CodeCapacityOverflow:
		return "RT001"
	case CodeMalformedDeclaration:
		return "IR001"
	case CodeUnknown:
		return "UNK000"
	}
	return fmt.Sprintf("UNK%03d", uint16(c))
}
