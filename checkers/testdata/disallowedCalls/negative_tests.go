package checker_test

import "os"

func allowed(f *os.File) {
	_ = f.Close()

	exit := os.Exit
	exit(2)
}
