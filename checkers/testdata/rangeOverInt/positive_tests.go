package checker_test

func use(int) {}

func countingLoops(n int, xs []string) {
	/// for loop can be written as `for i := range n`
	for i := 0; i < n; i++ {
		use(i)
	}

	/// for loop can be written as `for j := range len(xs)`
	for j := 0; j < len(xs); j++ {
		use(j)
	}
}
