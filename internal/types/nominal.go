package types

import (
	"fmt"

	"fortio.org/safecast"

	"iona/internal/source"
)

// NominalInfo stores metadata for a user-declared named type.
type NominalInfo struct {
	Name string
	Decl source.Span
}

// RegisterNominal allocates a named type slot and returns its TypeID.
// Registering the same name twice returns the original TypeID.
func (in *Interner) RegisterNominal(name string, decl source.Span) TypeID {
	for slot := 1; slot < len(in.nominals); slot++ {
		if in.nominals[slot].Name == name {
			return in.Intern(Type{Kind: KindNamed, Payload: uint32(slot)})
		}
	}
	in.nominals = append(in.nominals, NominalInfo{Name: name, Decl: decl})
	slot, err := safecast.Conv[uint32](len(in.nominals) - 1)
	if err != nil {
		panic(fmt.Errorf("nominal info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindNamed, Payload: slot})
}

// NominalInfo returns metadata for the provided named TypeID.
func (in *Interner) NominalInfo(typeID TypeID) (*NominalInfo, bool) {
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindNamed {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.nominals) {
		return nil, false
	}
	return &in.nominals[tt.Payload], true
}
