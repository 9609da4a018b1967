package cardtype

import (
	"regexp"
	"strings"
)

type matcher interface {
	match(number string) bool
}

// pattern matches number against an RE2 expression, then rejects any number
// starting with one of the excluded prefixes.
type pattern struct {
	re     *regexp.Regexp
	except []string
}

func newPattern(expr string, except ...string) pattern {
	return pattern{re: regexp.MustCompile(expr), except: except}
}

func (p pattern) match(number string) bool {
	if !p.re.MatchString(number) {
		return false
	}
	for _, prefix := range p.except {
		if strings.HasPrefix(number, prefix) {
			return false
		}
	}
	return true
}

// anyOf matches when one of its members does.
type anyOf []matcher

func (a anyOf) match(number string) bool {
	for _, m := range a {
		if m.match(number) {
			return true
		}
	}
	return false
}
