package asm

import (
	"fmt"
	"sort"
	"strings"
)

// MachineCodeFile renders the "asm_instr" output file: one 32-bit
// instruction per line as `0x%08x`, followed by the symbol table.
//
// Appending machine_code[i] per symbol (indexing the code array by
// instruction index rather than by line) would silently point at the
// wrong word whenever a label sits after a blank or comment-only line.
// Instead each label's *instruction index* is appended, one per line
// ordered by instruction index and then by label name, annotated with the label name so the file stays
// self-describing.
func (r Result) MachineCodeFile() string {
	var b strings.Builder
	for _, w := range r.MachineCode {
		fmt.Fprintf(&b, "0x%08x\n", w.Uint32())
	}
	for _, label := range r.sortedLabelNames() {
		fmt.Fprintf(&b, "0x%08x  ; %s\n", r.Labels[label], label)
	}
	return b.String()
}

// ListingFile renders the "asm_listing" output file: for each source
// line, either `<addr>  <code>  <source>` (code lines) or 24 spaces of
// padding followed by the source (non-code lines).
func (r Result) ListingFile() string {
	var b strings.Builder
	for _, line := range r.Listing {
		if line.HasCode {
			fmt.Fprintf(&b, "0x%08x  0x%08x  %s\n", line.Addr.Uint32(), line.Code.Uint32(), line.Text)
		} else {
			fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", 24), line.Text)
		}
	}
	return b.String()
}

func (r Result) sortedLabelNames() []string {
	names := make([]string, 0, len(r.Labels))
	for name := range r.Labels {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.Labels[names[i]] != r.Labels[names[j]] {
			return r.Labels[names[i]] < r.Labels[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
