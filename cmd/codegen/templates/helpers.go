package templates

import (
	"strconv"
	"strings"
)

// prefixedStrings lists prefix0 up to prefix(count-1), comma separated.
func prefixedStrings(prefix string, count int) string {
	names := make([]string, count)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return strings.Join(names, ", ")
}
