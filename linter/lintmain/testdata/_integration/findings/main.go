package main

var x interface{}

func main() {
	panic(nil)
}
