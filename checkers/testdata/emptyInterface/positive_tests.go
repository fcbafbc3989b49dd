package checker_test

/// interface{} can be replaced with any
func takesAnything(x interface{}) {}

type holder struct {
	/// interface{} can be replaced with any
	v interface{}
}

/// interface{} can be replaced with any
var values map[string]interface{}
