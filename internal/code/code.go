// Package code generates and recognises the opaque codes that act as the only
// credentials in a game: one per admin, one per invite and one per player.
package code

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// Kind identifies the role a code grants. Every kind is a single prefix letter.
type Kind byte

const (
	Admin  Kind = 'A'
	Player Kind = 'P'
	Invite Kind = 'I'
	// Any matches a code of any kind. It cannot be generated.
	Any Kind = 0
)

const (
	// Length is the total length of a code, prefix included.
	Length   = 16
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// bytes at or above this value are rejected so every character is equally likely
	sampleLimit = 256 - 256%len(alphabet)
)

var patterns = map[Kind]*regexp.Regexp{
	Admin:  compile(string(Admin)),
	Player: compile(string(Player)),
	Invite: compile(string(Invite)),
	Any:    compile("[" + string(Admin) + string(Player) + string(Invite) + "]"),
}

func compile(prefix string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("^%s[a-zA-Z0-9]{%d}$", prefix, Length-1))
}

func (k Kind) String() string {
	switch k {
	case Admin:
		return "admin"
	case Player:
		return "player"
	case Invite:
		return "invite"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// Generate returns a new random code of the given kind.
func Generate(kind Kind) (string, error) {
	if kind != Admin && kind != Player && kind != Invite {
		return "", fmt.Errorf("cannot generate a code of kind %q", kind)
	}
	out := make([]byte, 0, Length)
	out = append(out, byte(kind))
	buf := make([]byte, Length*2)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= sampleLimit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out), nil
}

// Pattern returns the expression a code of the given kind must match.
func Pattern(kind Kind) *regexp.Regexp {
	if p, ok := patterns[kind]; ok {
		return p
	}
	return patterns[Any]
}

// Valid reports whether value is a well-formed code of the given kind.
func Valid(kind Kind, value string) bool {
	return Pattern(kind).MatchString(value)
}

// KindOf returns the kind of a well-formed code.
func KindOf(value string) (Kind, bool) {
	if !Valid(Any, value) {
		return Any, false
	}
	return Kind(value[0]), true
}
