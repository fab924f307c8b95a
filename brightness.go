package img2ascii

import (
	"sort"

	"github.com/wbrown/img2ascii/imageutil"
)

// DegeneratePolicy decides how PrecomputeBrightness treats a charset whose
// glyphs all share one brightness.
type DegeneratePolicy int

const (
	// DegenerateMidpoint assigns every character the scaled brightness
	// 127.5.
	DegenerateMidpoint DegeneratePolicy = iota
	// DegenerateReject fails with *DegenerateCharsetError.
	DegenerateReject
)

const degenerateBrightness = 127.5

// BrightnessEntry is a character and its brightness scaled into [0, 255].
type BrightnessEntry struct {
	Char       rune
	Brightness float64
}

// BrightnessIndex holds the charset sorted by scaled brightness, once for
// inverted-color matching and once for normal matching. Both variants are
// ascending by Brightness.
type BrightnessIndex struct {
	inverted []BrightnessEntry
	normal   []BrightnessEntry
	// degenerate is set when every glyph shares one brightness.
	degenerate bool
}

// PrecomputeBrightness derives a BrightnessIndex from a glyph cache.
//
// Raw brightness is the mean intensity of each glyph. The charset is
// stably sorted by raw brightness, brightest first, and the observed range
// [darkest, lightest] is stretched to [0, 255]. The inverted variant maps
// b to 255 - scaled(b) over the brightest-first order; the normal variant
// maps b to scaled(b) over the reversed order. Either way the result
// ascends.
func PrecomputeBrightness(gc *GlyphCache, policy DegeneratePolicy) (*BrightnessIndex, error) {
	raw := make([]BrightnessEntry, 0, gc.Len())
	for _, g := range gc.glyphs {
		raw = append(raw, BrightnessEntry{Char: g.Char, Brightness: g.Bitmap.Mean()})
	}
	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].Brightness > raw[j].Brightness
	})

	lightest, darkest := raw[0].Brightness, raw[len(raw)-1].Brightness
	span := lightest - darkest
	if span == 0 && policy == DegenerateReject {
		return nil, &DegenerateCharsetError{Brightness: lightest}
	}

	scale := func(b float64, invert bool) float64 {
		if span == 0 {
			return degenerateBrightness
		}
		s := (b - darkest) / span * 255
		if invert {
			return 255 - s
		}
		return s
	}

	n := len(raw)
	bi := &BrightnessIndex{
		inverted:   make([]BrightnessEntry, n),
		normal:     make([]BrightnessEntry, n),
		degenerate: span == 0,
	}
	for i, e := range raw {
		bi.inverted[i] = BrightnessEntry{Char: e.Char, Brightness: scale(e.Brightness, true)}
		bi.normal[n-1-i] = BrightnessEntry{Char: e.Char, Brightness: scale(e.Brightness, false)}
	}
	return bi, nil
}

// Entries returns a copy of the inverted or normal variant.
func (bi *BrightnessIndex) Entries(invert bool) []BrightnessEntry {
	src := bi.variant(invert)
	out := make([]BrightnessEntry, len(src))
	copy(out, src)
	return out
}

func (bi *BrightnessIndex) variant(invert bool) []BrightnessEntry {
	if invert {
		return bi.inverted
	}
	return bi.normal
}

// Lookup returns the first character whose scaled brightness is >= b. A
// brightness above every entry clamps to the last (brightest) character.
// A degenerate index, whose entries all sit at the midpoint, always
// returns the first character of the variant.
func (bi *BrightnessIndex) Lookup(b float64, invert bool) rune {
	entries := bi.variant(invert)
	if bi.degenerate {
		return entries[0].Char
	}
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Brightness >= b
	})
	if i == len(entries) {
		i--
	}
	return entries[i].Char
}

// Match returns the character for a block by its mean intensity.
func (bi *BrightnessIndex) Match(block *imageutil.GrayImage, invert bool) rune {
	return bi.Lookup(block.Mean(), invert)
}
