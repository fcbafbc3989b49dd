package checker_test

func nilPanics() {
	_ = func() {
		/// [deny] panic(nil) calls are discouraged
		panic(nil)
	}

	_ = func() {
		/// panic(interface{}(nil)) calls are discouraged
		panic(interface{}(nil))
	}

	_ = func() {
		/// panic(any(nil)) calls are discouraged
		panic(any(nil))
	}
}
