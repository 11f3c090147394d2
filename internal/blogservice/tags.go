package blogservice

import "strings"

// splitTags turns "a, b,c" into [a b c]. Blank entries are dropped and the result is never nil.
func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
