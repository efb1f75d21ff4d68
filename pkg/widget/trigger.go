package widget

import "strings"

// ContactTrigger decides whether an assistant reply gets a contact button.
type ContactTrigger func(reply string) bool

var ContactTriggers = []string{
	"contact",
	"get in touch",
	"reach out",
	"connect you",
	"human representative",
	"team will contact",
	"provide your details",
}

// MatchesContactTriggers is a case-insensitive substring match against
// ContactTriggers.
func MatchesContactTriggers(reply string) bool {
	lower := strings.ToLower(reply)
	for _, trigger := range ContactTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
