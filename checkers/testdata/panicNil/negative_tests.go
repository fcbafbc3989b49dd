package checker_test

import "errors"

func notPanic(x interface{}) {}

func nonNilPanics() {
	_ = func() {
		panic("meaningful message")
	}

	_ = func() {
		panic(errors.New("error value"))
	}

	notPanic(nil)
}

func shadowedPanic() {
	panic := func(interface{}) {}
	panic(nil)
}

func suppressedPanic() {
	//lint:allow panicNil -- recovered right away
	panic(nil)
}
