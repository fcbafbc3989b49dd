package checker_test

import "os"

func forbidden() {}

func disallowed(f *os.File) {
	/// call to os.Exit is disallowed
	os.Exit(1)

	/// call to (*os.File).Chmod is disallowed
	_ = f.Chmod(0o644)

	/// call to checker_test.forbidden is disallowed
	forbidden()
}
