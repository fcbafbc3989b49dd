package checker_test

type point struct{ x, y int }

func duplicates(a int, p point, xs []int, ok bool) {
	/// suspicious identical LHS and RHS for `==` operator
	_ = a == a

	/// suspicious identical LHS and RHS for `-` operator
	_ = p.x - p.x

	/// suspicious identical LHS and RHS for `&&` operator
	_ = a > 0 && a > 0

	/// suspicious identical LHS and RHS for `<` operator
	_ = xs[0] < xs[0]

	/// suspicious identical LHS and RHS for `||` operator
	_ = ok || ok
}
