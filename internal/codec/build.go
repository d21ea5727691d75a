package codec

import (
	"cmp"
	"fmt"
	"slices"

	"vclock/internal/clock"
)

// build sorts entries by node and rejects duplicates before handing them to
// clock.New, which trusts its input order.
func build(entries []clock.Entry) (clock.VectorClock, error) {
	slices.SortFunc(entries, func(a, b clock.Entry) int {
		return cmp.Compare(a.Node, b.Node)
	})
	for i := 1; i < len(entries); i++ {
		if entries[i].Node == entries[i-1].Node {
			return clock.Empty, fmt.Errorf("%w: %q", ErrDuplicateNode, entries[i].Node)
		}
	}
	return clock.New(entries...), nil
}
