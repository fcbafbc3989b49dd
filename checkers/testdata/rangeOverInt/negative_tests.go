package checker_test

func notCountingLoops(n int, xs []int, f float64) {
	for i := 1; i < n; i++ {
		use(i)
	}
	for i := 0; i <= n; i++ {
		use(i)
	}
	for i := 0; i < n; i += 2 {
		use(i)
	}
	for i := 0; i < n; i++ {
		i++
	}
	for i := 0; i < n; i++ {
		n--
	}
	for i := 0; i < len(xs); i++ {
		xs = xs[1:]
	}
	for i := 0; float64(i) < f; i++ {
		use(i)
	}
}
