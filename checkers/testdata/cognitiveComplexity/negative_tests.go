package checker_test

func simple(x int) int {
	if x > 0 {
		return x
	} else if x < 0 {
		return -x
	}
	return 0
}

var literal = func(xs []int) (sum int) {
	for _, x := range xs {
		if x > 0 || x < -10 {
			sum += x
		}
	}
	return sum
}
