package checker_test

type stringer interface {
	String() string
}

func takesAny(x any) {}

func shadowedAny() {
	type any = int
	var x interface{}
	_ = x
}
