// Package kinds registers the entity kinds PharmaDB validates.
// Import it for side effects wherever rows are written.
package kinds

import (
	"regexp"
	"strings"
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
