package main

import "strings"

var x interface{}

//lint:allow panicNil -- exercised on purpose
func mustNot() {
	panic(nil)
}

func join(parts []string) string {
	return strings.Join(parts, ",")
}

func main() {
	_ = join(nil)
	mustNot()
}
