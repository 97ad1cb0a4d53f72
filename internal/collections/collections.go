// Package collections holds helpers over the string sets used for versions, features
// and connection hops.
package collections

// Contains reports whether elem is one of elements.
func Contains(elem string, elements []string) bool {
	for _, e := range elements {
		if elem == e {
			return true
		}
	}
	return false
}

// Intersect returns the elements of source that also appear in target, in source order.
func Intersect(source, target []string) []string {
	var result []string
	for _, e := range source {
		if Contains(e, target) {
			result = append(result, e)
		}
	}
	return result
}
