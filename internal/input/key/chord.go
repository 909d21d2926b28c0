package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Errors returned by ParseChord.
var (
	ErrEmptyChord   = errors.New("empty chord")
	ErrInvalidChord = errors.New("invalid chord")
)

// AnyModifier is the chord prefix that matches every modifier set.
const AnyModifier = "*"

// Chord is a key with the modifiers required to trigger it.
type Chord struct {
	Key       Key
	Rune      rune
	Modifiers Modifier

	// AnyModifiers makes the chord match regardless of Modifiers.
	AnyModifiers bool
}

// ParseChord parses chords such as "left", "*+left", "meta+shift+left"
// and "ctrl+z". Names are case-insensitive.
func ParseChord(input string) (Chord, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Chord{}, ErrEmptyChord
	}

	parts := strings.Split(input, "+")
	// "ctrl++" names the plus key.
	if strings.HasSuffix(input, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	var c Chord
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		if p == AnyModifier {
			c.AnyModifiers = true
			continue
		}
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, p, input)
		}
		c.Modifiers = c.Modifiers.With(mod)
	}

	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" {
		return Chord{}, fmt.Errorf("%w: missing key in %q", ErrInvalidChord, input)
	}
	if k := KeyFromName(last); k != KeyNone {
		c.Key = k
		return c, nil
	}
	if utf8.RuneCountInString(last) != 1 {
		return Chord{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidChord, last, input)
	}
	r, _ := utf8.DecodeRuneInString(last)
	c.Key = KeyRune
	c.Rune = unicode.ToLower(r)
	return c, nil
}

// MustParseChord is like ParseChord but panics on error.
func MustParseChord(input string) Chord {
	c, err := ParseChord(input)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches returns true if ev triggers the chord. Character keys compare
// case-insensitively since Shift is carried as a modifier.
func (c Chord) Matches(ev Event) bool {
	if c.Key != ev.Key {
		return false
	}
	if c.Key == KeyRune && c.Rune != unicode.ToLower(ev.Rune) {
		return false
	}
	return c.AnyModifiers || c.Modifiers == ev.Modifiers
}

// String returns the canonical chord form accepted by ParseChord.
func (c Chord) String() string {
	var sb strings.Builder
	if c.AnyModifiers {
		sb.WriteString(AnyModifier)
		sb.WriteByte('+')
	} else if c.Modifiers != ModNone {
		sb.WriteString(c.Modifiers.String())
		sb.WriteByte('+')
	}
	sb.WriteString(name(c.Key, c.Rune))
	return sb.String()
}
