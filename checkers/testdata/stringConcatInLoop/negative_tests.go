package checker_test

func noConcatInLoops(xs []string) string {
	s := ""
	for i := 0; i < 3; i++ {
		local := ""
		local += "x"
		_ = local
	}
	s += "done"

	n := 0
	for range xs {
		n += 1
	}

	for range xs {
		func() {
			s += "in a closure"
		}()
	}
	for _, x := range xs {
		x += "!"
		_ = x
	}
	return s
}
