package checker_test

func noDuplicates(a, b int, f float64, g func() int) {
	_ = a == b
	_ = f != f
	_ = g() - g()
	_ = a + a
	_ = a * a
	_ = a<<1 == b<<1
}
