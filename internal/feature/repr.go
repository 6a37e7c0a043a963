package feature

import (
	"fmt"
	"strings"
)

// seqPreview is the number of leading bases shown for the seq field in a
// record's debug form. Full sequences can run to tens of kilobases, which
// would make logged records unreadable.
const seqPreview = 3

// field is one key=value pair in a record's debug form.
type field struct {
	key string
	val any
}

// formatRecord renders a record as Name(key=value, ...), listing fields in
// construction order. A seq value longer than seqPreview characters is
// abbreviated to its first seqPreview characters plus "..."; the stored
// value is never modified.
func formatRecord(name string, fields ...field) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.key)
		b.WriteByte('=')
		if s, ok := f.val.(string); ok && f.key == "seq" && len(s) > seqPreview {
			b.WriteString(s[:seqPreview])
			b.WriteString("...")
		} else {
			fmt.Fprintf(&b, "%v", f.val)
		}
	}
	b.WriteByte(')')
	return b.String()
}
