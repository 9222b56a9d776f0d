package templates

// template function. mostly for pagination links.
func add(a int, b int) int {
	return a + b
}
