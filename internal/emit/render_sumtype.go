package emit

import (
	"fmt"
	"strings"

	"iona/internal/lower"
)

// renderSumType writes the lowered triple: tag enum, payload union (only
// when some variant carries data), wrapper aggregate. The shape matches the
// fixed output contract, so downstream pattern matching can rely on tag
// ordinals following declaration order.
func renderSumType(b *strings.Builder, l *lower.LoweredSumType) {
	fmt.Fprintf(b, "typedef enum {\n")
	for _, tag := range l.Tags {
		fmt.Fprintf(b, "\t%s,\n", tag)
	}
	fmt.Fprintf(b, "} %s;\n\n", l.EnumName())

	if len(l.Union) > 0 {
		fmt.Fprintf(b, "typedef union {\n")
		for _, field := range l.Union {
			fmt.Fprintf(b, "\t%s %s;\n", field.CType, field.Name)
		}
		fmt.Fprintf(b, "} %s;\n\n", l.UnionName())

		fmt.Fprintf(b, "struct %s {\n\t%s tag;\n\t%s data;\n};", l.Name, l.EnumName(), l.UnionName())
		return
	}
	fmt.Fprintf(b, "struct %s {\n\t%s tag;\n};", l.Name, l.EnumName())
}
