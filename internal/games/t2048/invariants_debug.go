//go:build t2048debug

package t2048

// checkInvariants panics when a committed board breaks an invariant.
func checkInvariants(b Board) {
	if err := b.Validate(); err != nil {
		panic(err)
	}
}
