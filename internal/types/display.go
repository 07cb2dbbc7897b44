package types

import "fmt"

// DisplayName renders a type the way diagnostics show it, e.g.
// "Array<Array<Integer>>".
func (in *Interner) DisplayName(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindBool:
		return "Bool"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindSlot:
		return "Slot"
	case KindArray:
		return fmt.Sprintf("Array<%s>", in.DisplayName(tt.Elem))
	case KindNamed:
		if info, ok := in.NominalInfo(id); ok {
			return info.Name
		}
		return "<invalid>"
	}
	return "<invalid>"
}
