package emit

import (
	"fmt"
	"strings"

	"iona/internal/lower"
)

// renderStruct writes the lowered aggregate. Field order follows declaration
// order, which fixes the target layout.
func renderStruct(b *strings.Builder, l *lower.LoweredStruct) {
	fmt.Fprintf(b, "struct %s {\n", l.Name)
	for _, field := range l.Fields {
		fmt.Fprintf(b, "\t%s %s;\n", field.CType, field.Name)
	}
	b.WriteString("};")
}
