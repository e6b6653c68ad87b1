package gedcom

import (
	"regexp"
	"strings"
)

// namePattern follows the GEDCOM "Given /Surname/" convention. The closing
// slash is optional and anything after it is dropped.
var namePattern = regexp.MustCompile(`^([^/]*)\s*/([^/]*)/?`)

// splitName returns the given names and surname of a raw NAME value.
func splitName(raw string) (given, surname string) {
	if m := namePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(raw), ""
}
