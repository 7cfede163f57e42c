// Package nick contains the identity concepts handled by the nick-group commands:
// nicknames, group ids, mergeable fields and the reply catalog.
// No storage, runtime or transport logic should be added here.
package nick

import (
	"strconv"
	"strings"
)

// Nickname is a chat handle as typed by a user. Two nicknames designate the same
// participant when their slugs are equal.
type Nickname string

// GroupID identifies a nick group in the store.
type GroupID int64

func (g GroupID) String() string {
	return strconv.FormatInt(int64(g), 10)
}

var rfc1459 = strings.NewReplacer("[", "{", "]", "}", "\\", "|", "^", "~")

// Slug returns the case-normalized form of the nickname, using the IRC RFC 1459 casemapping.
func (n Nickname) Slug() string {
	return rfc1459.Replace(strings.ToLower(string(n)))
}

func (n Nickname) Equal(other Nickname) bool {
	return n.Slug() == other.Slug()
}

func (n Nickname) IsEmpty() bool {
	return strings.TrimSpace(string(n)) == ""
}

// IsDigit reports whether the nickname is made only of ASCII digits,
// meaning it can be read as a literal group id.
func (n Nickname) IsDigit() bool {
	if n == "" {
		return false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (n Nickname) String() string {
	return string(n)
}
