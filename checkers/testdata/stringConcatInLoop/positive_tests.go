package checker_test

type text string

func concatInLoops(xs []string, ts []text) (string, text) {
	s := ""
	for _, x := range xs {
		/// s is concatenated in a loop, consider using strings.Builder
		s += x
	}

	var t text
	for i := 0; i < len(ts); i++ {
		/// t is concatenated in a loop, consider using strings.Builder
		t += ts[i]
	}
	return s, t
}

func concatInitVar(x string, n int) string {
	for s := ""; len(s) < n; {
		/// s is concatenated in a loop, consider using strings.Builder
		s += x
		if len(s) == n {
			return s
		}
	}
	return ""
}
