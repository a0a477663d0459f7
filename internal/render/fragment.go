package render

import (
	"fmt"
	"strings"
)

// Fragment is one node in the display tree. Renderers produce fragments;
// the host shell (web view, console demo, test assertion) decides how to
// materialize them. A fragment is plain data: rendering the same state twice
// yields equal trees.
type Fragment struct {
	// Kind is the structural role: "section", "stat", "card", "badge",
	// "text", "action", "table", "row", "cell", "chart", "point".
	Kind string
	// Key is the stable identity of the fragment, usually a record id.
	Key string
	// Text is the localized display text.
	Text string
	// Class is a style hint, e.g. the status class on a badge.
	Class string
	// Intent names the user action an actionable fragment emits when
	// activated. Empty for passive fragments.
	Intent   Intent
	Children []Fragment
}

// String serializes the tree deterministically, one node per line. Tests
// compare these strings byte for byte to prove render idempotence.
func (f Fragment) String() string {
	var b strings.Builder
	f.write(&b, 0)
	return b.String()
}

func (f Fragment) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(f.Kind)
	if f.Key != "" {
		fmt.Fprintf(b, "#%s", f.Key)
	}
	if f.Class != "" {
		fmt.Fprintf(b, ".%s", f.Class)
	}
	if f.Text != "" {
		fmt.Fprintf(b, " %q", f.Text)
	}
	if f.Intent.Name != "" {
		fmt.Fprintf(b, " ->%s(%s)", f.Intent.Name, f.Intent.TargetID)
	}
	b.WriteByte('\n')
	for _, child := range f.Children {
		child.write(b, depth+1)
	}
}
