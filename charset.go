package img2ascii

import "fmt"

const (
	// SymbolCharset is the default charset for brightness matching: a
	// small spread of symbols from sparse to dense.
	SymbolCharset = " 1234567890!@#$%^&*().awjiWMXQ[]="

	// FullCharset is the default charset for min-difference matching:
	// letters, digits, punctuation and space. Comparing whole bitmaps
	// copes with a denser alphabet than a single brightness scalar.
	FullCharset = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" +
		" "
)

// Charset is an ordered sequence of unique characters. The order defines
// the index of each character in a GlyphTensor.
type Charset []rune

// NewCharset validates s and returns it as a Charset. The charset must be
// non-empty and must not repeat a character.
func NewCharset(s string) (Charset, error) {
	if s == "" {
		return nil, &CharsetError{Charset: s, Reason: "empty"}
	}
	cs := Charset(s)
	seen := make(map[rune]struct{}, len(cs))
	for _, r := range cs {
		if _, dup := seen[r]; dup {
			return nil, &CharsetError{Charset: s, Reason: fmt.Sprintf("duplicate character %q", r)}
		}
		seen[r] = struct{}{}
	}
	return cs, nil
}

// MustCharset is like NewCharset but panics on an invalid charset. It is
// intended for package-level constants.
func MustCharset(s string) Charset {
	cs, err := NewCharset(s)
	if err != nil {
		panic(err)
	}
	return cs
}

// Index returns the position of r in the charset, or -1.
func (cs Charset) Index(r rune) int {
	for i, c := range cs {
		if c == r {
			return i
		}
	}
	return -1
}

func (cs Charset) String() string {
	return string(cs)
}
