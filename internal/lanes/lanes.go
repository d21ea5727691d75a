package lanes

// Implementation function pointers, swapped by install.
var (
	maxImpl         = maxGeneric
	equalImpl       = equalGeneric
	dominanceImpl   = dominanceGeneric
	lessOrEqualImpl = lessOrEqualGeneric
)

// Max stores max(a[i], b[i]) into dst[i].
// a, b and dst must have the same length.
func Max(dst, a, b []uint64) {
	if len(a) == 0 {
		return
	}
	maxImpl(dst, a, b)
}

// Equal reports whether a and b hold the same values lane by lane.
func Equal(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	return equalImpl(a, b)
}

// Dominance reports whether every lane satisfies a[i] >= b[i] (ge) and
// whether every lane satisfies a[i] <= b[i] (le). Both are true for equal
// input and both are false for concurrent input. a and b must have the same
// length.
func Dominance(a, b []uint64) (ge, le bool) {
	return dominanceImpl(a, b)
}

// LessOrEqual reports whether every lane satisfies a[i] <= b[i]. When ok is
// true, equal reports whether every lane is equal. a and b must have the
// same length.
func LessOrEqual(a, b []uint64) (ok, equal bool) {
	return lessOrEqualImpl(a, b)
}

func maxGeneric(dst, a, b []uint64) {
	for i := range a {
		dst[i] = max(a[i], b[i])
	}
}

func maxUnrolled(dst, a, b []uint64) {
	n := len(a)
	b = b[:n]
	dst = dst[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = max(a[i], b[i])
		dst[i+1] = max(a[i+1], b[i+1])
		dst[i+2] = max(a[i+2], b[i+2])
		dst[i+3] = max(a[i+3], b[i+3])
	}
	for ; i < n; i++ {
		dst[i] = max(a[i], b[i])
	}
}

func equalGeneric(a, b []uint64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalUnrolled(a, b []uint64) bool {
	n := len(a)
	b = b[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		if (a[i] ^ b[i]) | (a[i+1] ^ b[i+1]) | (a[i+2] ^ b[i+2]) | (a[i+3] ^ b[i+3]) != 0 {
			return false
		}
	}
	for ; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dominanceGeneric(a, b []uint64) (ge, le bool) {
	ge, le = true, true
	for i := range a {
		ge = ge && a[i] >= b[i]
		le = le && a[i] <= b[i]
		if !ge && !le {
			return false, false
		}
	}
	return ge, le
}

func dominanceUnrolled(a, b []uint64) (ge, le bool) {
	n := len(a)
	b = b[:n]
	ge, le = true, true
	i := 0
	for ; i+4 <= n; i += 4 {
		a0, a1, a2, a3 := a[i], a[i+1], a[i+2], a[i+3]
		b0, b1, b2, b3 := b[i], b[i+1], b[i+2], b[i+3]

		ge = ge && a0 >= b0 && a1 >= b1 && a2 >= b2 && a3 >= b3
		le = le && a0 <= b0 && a1 <= b1 && a2 <= b2 && a3 <= b3
		if !ge && !le {
			return false, false
		}
	}
	for ; i < n; i++ {
		ge = ge && a[i] >= b[i]
		le = le && a[i] <= b[i]
		if !ge && !le {
			return false, false
		}
	}
	return ge, le
}

func lessOrEqualGeneric(a, b []uint64) (ok, equal bool) {
	equal = true
	for i := range a {
		if a[i] > b[i] {
			return false, false
		}
		equal = equal && a[i] == b[i]
	}
	return true, equal
}

func lessOrEqualUnrolled(a, b []uint64) (ok, equal bool) {
	n := len(a)
	b = b[:n]
	equal = true
	i := 0
	for ; i+4 <= n; i += 4 {
		a0, a1, a2, a3 := a[i], a[i+1], a[i+2], a[i+3]
		b0, b1, b2, b3 := b[i], b[i+1], b[i+2], b[i+3]

		if a0 > b0 || a1 > b1 || a2 > b2 || a3 > b3 {
			return false, false
		}
		equal = equal && a0 == b0 && a1 == b1 && a2 == b2 && a3 == b3
	}
	for ; i < n; i++ {
		if a[i] > b[i] {
			return false, false
		}
		equal = equal && a[i] == b[i]
	}
	return true, equal
}
