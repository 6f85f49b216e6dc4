// Package naming builds identifiers for generated components, operations and
// type declarations.
package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanID joins the words of all parts into a PascalCase identifier.
// Anything that is not a letter or a digit separates words, and every upper
// case run starts a new word:
//
//	CleanID("get", "/v1/user/:id")     // "GetV1UserId"
//	CleanID("post", "/users", "Input") // "PostUsersInput"
func CleanID(parts ...string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, part := range parts {
		for _, word := range splitWords(part) {
			b.WriteString(caser.String(word))
		}
	}
	return b.String()
}

func splitWords(s string) []string {
	var (
		words   []string
		current []rune
		inUpper bool
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
			inUpper = false
		case unicode.IsUpper(r):
			if !inUpper {
				flush()
			}
			inUpper = true
			current = append(current, r)
		default:
			inUpper = false
			current = append(current, r)
		}
	}
	flush()
	return words
}

// Counter hands out unique names. The first request for a name returns it
// unchanged, later ones append 2, 3, and so on.
type Counter struct {
	seen map[string]int
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{seen: make(map[string]int)}
}

// Unique returns name, or name with a numeric suffix if it was taken.
func (c *Counter) Unique(name string) string {
	if _, taken := c.seen[name]; !taken {
		c.seen[name] = 1
		return name
	}
	for {
		c.seen[name]++
		candidate := name + strconv.Itoa(c.seen[name])
		if _, taken := c.seen[candidate]; !taken {
			c.seen[candidate] = 1
			return candidate
		}
	}
}

// Next returns the next numbered name with the given prefix: prefix_1,
// prefix_2, and so on.
func (c *Counter) Next(prefix string) string {
	c.seen[prefix]++
	return prefix + "_" + strconv.Itoa(c.seen[prefix])
}
