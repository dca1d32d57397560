package ranking

// EachTriple calls fn for every index triple i<j<k below n, in lexicographic
// order, until fn returns false.
func EachTriple(n int, fn func(i, j, k int) bool) {
	for i := 0; i < n; i++ {
		if !eachTripleFrom(i, n, fn) {
			return
		}
	}
}

// eachTripleFrom enumerates the triples whose first index is i. It returns
// false if fn stopped the enumeration.
func eachTripleFrom(i, n int, fn func(i, j, k int) bool) bool {
	for j := i + 1; j < n; j++ {
		for k := j + 1; k < n; k++ {
			if !fn(i, j, k) {
				return false
			}
		}
	}
	return true
}

// CountTriples returns n choose 3.
func CountTriples(n int) int {
	if n < 3 {
		return 0
	}
	return n * (n - 1) * (n - 2) / 6
}
