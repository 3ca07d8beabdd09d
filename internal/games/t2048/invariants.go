//go:build !t2048debug

package t2048

// checkInvariants is compiled out unless built with -tags t2048debug.
func checkInvariants(Board) {}
