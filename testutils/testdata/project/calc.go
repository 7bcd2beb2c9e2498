package project

// Add returns the sum.
func Add(a, b int) int {
	return a + b
}

// Abs returns |x|.
func Abs(x int) int {
	if x < 0 {
		return -x // coverage: no cover
	}
	return x
}
