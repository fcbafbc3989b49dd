package checker_test

func complex28(x int) int {
	if x > 0 {
		x--
	}
	if x > 1 {
		x--
	}
	if x > 2 {
		x--
	}
	if x > 3 {
		x--
	}
	if x > 4 {
		x--
	}
	if x > 5 {
		x--
	}
	if x > 6 {
		x--
	}
	if x > 7 {
		x--
	}
	if x > 8 {
		x--
	}
	if x > 9 {
		x--
	}
	if x > 10 {
		x--
	}
	if x > 11 {
		x--
	}
	if x > 12 {
		x--
	}
	if x > 13 {
		x--
	}
	if x > 14 {
		x--
	}
	if x > 15 {
		x--
	}
	if x > 16 {
		x--
	}
	if x > 17 {
		x--
	}
	if x > 18 {
		x--
	}
	if x > 19 {
		x--
	}
	if x > 20 {
		x--
	}
	if x > 21 {
		x--
	}
	if x > 22 {
		x--
	}
	if x > 23 {
		x--
	}
	if x > 24 {
		x--
	}
	if x > 25 {
		x--
	}
	if x > 26 {
		x--
	}
	if x > 27 {
		x--
	}
	return x
}

/// cognitive complexity 32 of func complex32 is high (> 30)
func complex32(x int) int {
	if x > 0 {
		x--
	}
	if x > 1 {
		x--
	}
	if x > 2 {
		x--
	}
	if x > 3 {
		x--
	}
	if x > 4 {
		x--
	}
	if x > 5 {
		x--
	}
	if x > 6 {
		x--
	}
	if x > 7 {
		x--
	}
	if x > 8 {
		x--
	}
	if x > 9 {
		x--
	}
	if x > 10 {
		x--
	}
	if x > 11 {
		x--
	}
	if x > 12 {
		x--
	}
	if x > 13 {
		x--
	}
	if x > 14 {
		x--
	}
	if x > 15 {
		x--
	}
	if x > 16 {
		x--
	}
	if x > 17 {
		x--
	}
	if x > 18 {
		x--
	}
	if x > 19 {
		x--
	}
	if x > 20 {
		x--
	}
	if x > 21 {
		x--
	}
	if x > 22 {
		x--
	}
	if x > 23 {
		x--
	}
	if x > 24 {
		x--
	}
	if x > 25 {
		x--
	}
	if x > 26 {
		x--
	}
	if x > 27 {
		x--
	}
	if x > 28 {
		x--
	}
	if x > 29 {
		x--
	}
	if x > 30 {
		x--
	}
	if x > 31 {
		x--
	}
	return x
}

/// cognitive complexity 32 of func nested is high (> 30)
func nested(x int) int {
	for i := 0; i < x; i++ {
		if i > 1 {
			if i > 2 {
				x--
			}
		}
	}
	for i := 0; i < x; i++ {
		if i > 1 {
			if i > 2 {
				x--
			}
		}
	}
	for i := 0; i < x; i++ {
		if i > 1 {
			if i > 2 {
				x--
			}
		}
	}
	for i := 0; i < x; i++ {
		if i > 1 {
			if i > 2 {
				x--
			}
		}
	}
	for i := 0; i < x; i++ {
		if i > 1 {
			if i > 2 {
				x--
			}
		}
	}
	if x > 0 && x < 10 {
		x++
	}
	return x
}
