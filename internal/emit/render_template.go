package emit

import (
	"fmt"
	"strings"

	"iona/internal/registry"
)

// renderInstantiation writes the concrete growable-array code for one
// registry instantiation. Every function symbol hangs off the instantiation
// prefix, so operations on different instantiations never collide. Get, set
// and pop report out-of-range access through their bool result instead of
// fabricating a zero element.
func renderInstantiation(b *strings.Builder, inst *registry.Instantiation) {
	name := inst.TypeName
	prefix := inst.Prefix
	elem := inst.ElemCType

	fmt.Fprintf(b, "typedef struct {\n")
	fmt.Fprintf(b, "    %s* data;\n", elem)
	fmt.Fprintf(b, "    size_t len;\n")
	fmt.Fprintf(b, "    size_t capacity;\n")
	fmt.Fprintf(b, "} %s;\n\n", name)

	// Allocation failure aborts the run before any corrupt value escapes.
	fmt.Fprintf(b, "static void %s_alloc_failed(void) {\n", prefix)
	fmt.Fprintf(b, "    perror(\"fatal runtime error: allocation failed in %s\");\n", prefix)
	fmt.Fprintf(b, "    exit(EXIT_FAILURE);\n")
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Create array with specific capacity\n")
	fmt.Fprintf(b, "%s %s_with_capacity(size_t capacity) {\n", name, prefix)
	fmt.Fprintf(b, "    %s arr = {\n", name)
	fmt.Fprintf(b, "        .data = malloc(sizeof(%s) * capacity),\n", elem)
	fmt.Fprintf(b, "        .len = 0,\n")
	fmt.Fprintf(b, "        .capacity = capacity\n")
	fmt.Fprintf(b, "    };\n")
	fmt.Fprintf(b, "    if (arr.data == NULL && capacity > 0) {\n")
	fmt.Fprintf(b, "        %s_alloc_failed();\n", prefix)
	fmt.Fprintf(b, "    }\n")
	fmt.Fprintf(b, "    return arr;\n")
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Create a new empty array with default capacity\n")
	fmt.Fprintf(b, "%s %s_new(void) {\n", name, prefix)
	fmt.Fprintf(b, "    return %s_with_capacity(8);\n", prefix)
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Free the array's memory\n")
	fmt.Fprintf(b, "void %s_free(%s* arr) {\n", prefix, name)
	if inst.ElemDrop != "" {
		fmt.Fprintf(b, "    for (size_t i = 0; i < arr->len; i++) {\n")
		fmt.Fprintf(b, "        %s(&arr->data[i]);\n", inst.ElemDrop)
		fmt.Fprintf(b, "    }\n")
	}
	fmt.Fprintf(b, "    free(arr->data);\n")
	fmt.Fprintf(b, "    arr->data = NULL;\n")
	fmt.Fprintf(b, "    arr->len = 0;\n")
	fmt.Fprintf(b, "    arr->capacity = 0;\n")
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Ensure the array has enough capacity for additional elements\n")
	fmt.Fprintf(b, "void %s_reserve(%s* arr, size_t additional) {\n", prefix, name)
	fmt.Fprintf(b, "    size_t required = arr->len + additional;\n")
	fmt.Fprintf(b, "    if (required <= arr->capacity) return;\n\n")
	fmt.Fprintf(b, "    // Grow by doubling or required amount, whichever is larger\n")
	fmt.Fprintf(b, "    size_t new_capacity = arr->capacity * 2;\n")
	fmt.Fprintf(b, "    if (new_capacity < required) new_capacity = required;\n\n")
	fmt.Fprintf(b, "    %s* new_buf = realloc(arr->data, sizeof(%s) * new_capacity);\n", elem, elem)
	fmt.Fprintf(b, "    if (new_buf == NULL) {\n")
	fmt.Fprintf(b, "        %s_alloc_failed();\n", prefix)
	fmt.Fprintf(b, "    }\n")
	fmt.Fprintf(b, "    arr->data = new_buf;\n")
	fmt.Fprintf(b, "    arr->capacity = new_capacity;\n")
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Push an element to the end\n")
	fmt.Fprintf(b, "void %s_push(%s* arr, %s elem) {\n", prefix, name, elem)
	fmt.Fprintf(b, "    %s_reserve(arr, 1);\n", prefix)
	fmt.Fprintf(b, "    arr->data[arr->len++] = elem;\n")
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Pop an element from the end; false when the array is empty\n")
	fmt.Fprintf(b, "bool %s_pop(%s* arr, %s* out) {\n", prefix, name, elem)
	fmt.Fprintf(b, "    if (arr->len == 0) {\n")
	fmt.Fprintf(b, "        return false;\n")
	fmt.Fprintf(b, "    }\n")
	fmt.Fprintf(b, "    *out = arr->data[--arr->len];\n")
	fmt.Fprintf(b, "    return true;\n")
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Get a slice of the array (returns new array); bounds are clamped\n")
	fmt.Fprintf(b, "%s %s_slice(const %s* arr, size_t start, size_t end) {\n", name, prefix, name)
	fmt.Fprintf(b, "    if (end > arr->len) end = arr->len;\n")
	fmt.Fprintf(b, "    if (start > end) start = end;\n\n")
	fmt.Fprintf(b, "    size_t slice_len = end - start;\n")
	fmt.Fprintf(b, "    %s result = %s_with_capacity(slice_len);\n", name, prefix)
	fmt.Fprintf(b, "    memcpy(result.data, arr->data + start, slice_len * sizeof(%s));\n", elem)
	fmt.Fprintf(b, "    result.len = slice_len;\n")
	fmt.Fprintf(b, "    return result;\n")
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Get element at index; false when the index is out of range\n")
	fmt.Fprintf(b, "bool %s_get(const %s* arr, size_t index, %s* out) {\n", prefix, name, elem)
	fmt.Fprintf(b, "    if (index >= arr->len) {\n")
	fmt.Fprintf(b, "        return false;\n")
	fmt.Fprintf(b, "    }\n")
	fmt.Fprintf(b, "    *out = arr->data[index];\n")
	fmt.Fprintf(b, "    return true;\n")
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Set element at index; false when the index is out of range\n")
	fmt.Fprintf(b, "bool %s_set(%s* arr, size_t index, %s elem) {\n", prefix, name, elem)
	fmt.Fprintf(b, "    if (index >= arr->len) {\n")
	fmt.Fprintf(b, "        return false;\n")
	fmt.Fprintf(b, "    }\n")
	fmt.Fprintf(b, "    arr->data[index] = elem;\n")
	fmt.Fprintf(b, "    return true;\n")
	fmt.Fprintf(b, "}")
}
