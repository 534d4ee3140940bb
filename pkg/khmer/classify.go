// Package khmer implements a probabilistic word segmenter for Khmer text:
// a dictionary-backed trie, a Viterbi decoder over code points, and a
// three-pass post-processor.
package khmer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Unicode Khmer blocks: main syllabary U+1780-U+17FF, symbols U+19E0-U+19FF.
const (
	khmerMainStart = 0x1780
	khmerMainEnd   = 0x17FF
	khmerSymStart  = 0x19E0
	khmerSymEnd    = 0x19FF

	// bitTableSize covers every code point the dense flag table indexes
	// directly; code points at or above it (the Khmer symbols block and a
	// handful of general-punctuation separators) are classified by the
	// small fallback checks below instead.
	bitTableSize = 0x1800
)

type charFlag uint16

const (
	flagConsonant charFlag = 1 << iota
	flagIndependentVowel
	flagDependentVowel
	flagSign
	flagCoeng
	flagDigit
	flagCurrency
	flagSeparator
	flagValidSingle
)

// khmerRanges declares the two-block Khmer Unicode union once, via
// golang.org/x/text's rangetable helper, instead of a second hand-maintained
// pair of comparisons scattered across predicates.
var khmerRanges = rangetable.Merge(
	rangetable.New(runeSpan(khmerMainStart, khmerMainEnd)...),
	rangetable.New(runeSpan(khmerSymStart, khmerSymEnd)...),
)

func runeSpan(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// flagTable is the dense bit-flag table spec.md §9 calls for: one entry per
// code point from U+0000 to U+17FF, avoiding per-predicate range branches
// on the hot path.
var flagTable [bitTableSize]charFlag

// separatorsAbove1800 holds the few separator code points outside the dense
// table's domain (general punctuation quotation marks).
var separatorsAbove1800 = map[rune]bool{
	0x201C: true,
	0x201D: true,
}

// currencyAbove1800 holds currency code points outside the dense table's
// domain (0x20AC, the Euro sign, falls well above bitTableSize).
var currencyAbove1800 = map[rune]bool{
	0x20AC: true,
}

var validSingleRunes = [...]rune{
	// consonants
	0x1780, 0x1781, 0x1782, 0x1784, 0x1785, 0x1786, 0x1789, 0x178A,
	0x178F, 0x1791, 0x1796, 0x179A, 0x179B, 0x179F, 0x17A1,
	// independent vowels
	0x17A6, 0x17A7, 0x17AA, 0x17AC, 0x17AE, 0x17AF, 0x17B1, 0x17B3,
}

// currencyRunes holds currency code points within the dense table's domain.
// Code points at or above bitTableSize (the Euro sign) go in
// currencyAbove1800 instead, since they would index flagTable out of bounds.
var currencyRunes = [...]rune{'$', 0x17DB, 0x00A3, 0x00A5}

const asciiSeparators = "!?.,;:\"'()[]{}-/ «»˝$%"

func init() {
	for r := rune(0); r < bitTableSize; r++ {
		var f charFlag
		switch {
		case r >= khmerMainStart && r <= 0x17A2:
			f |= flagConsonant
		case r >= 0x17A3 && r <= 0x17B3:
			f |= flagIndependentVowel
		}
		if r >= 0x17B6 && r <= 0x17C5 {
			f |= flagDependentVowel
		}
		if (r >= 0x17C6 && r <= 0x17D1) || r == 0x17D3 || r == 0x17DD {
			f |= flagSign
		}
		if r == 0x17D2 {
			f |= flagCoeng
		}
		if (r >= '0' && r <= '9') || (r >= 0x17E0 && r <= 0x17E9) {
			f |= flagDigit
		}
		if r >= 0x17D4 && r <= 0x17DA {
			f |= flagSeparator
		}
		flagTable[r] = f
	}
	for _, r := range currencyRunes {
		flagTable[r] |= flagCurrency
	}
	for _, r := range asciiSeparators {
		flagTable[r] |= flagSeparator
	}
	flagTable[0x17DB] |= flagSeparator // Khmer Riel also acts as separator
	for _, r := range validSingleRunes {
		flagTable[r] |= flagValidSingle
	}
}

func lookupFlag(r rune, f charFlag) bool {
	if r >= 0 && r < bitTableSize {
		return flagTable[r]&f != 0
	}
	return false
}

// IsKhmer reports whether r falls in the Khmer main syllabary or Khmer
// symbols Unicode block.
func IsKhmer(r rune) bool {
	return unicode.Is(khmerRanges, r)
}

// IsConsonant reports whether r is a Khmer base consonant (U+1780-U+17A2).
func IsConsonant(r rune) bool { return lookupFlag(r, flagConsonant) }

// IsIndependentVowel reports whether r is a Khmer independent vowel
// (U+17A3-U+17B3).
func IsIndependentVowel(r rune) bool { return lookupFlag(r, flagIndependentVowel) }

// IsDependentVowel reports whether r is a Khmer dependent vowel
// (U+17B6-U+17C5).
func IsDependentVowel(r rune) bool { return lookupFlag(r, flagDependentVowel) }

// IsSign reports whether r is a Khmer sign/diacritic.
func IsSign(r rune) bool { return lookupFlag(r, flagSign) }

// IsCoeng reports whether r is the subscript-join marker U+17D2.
func IsCoeng(r rune) bool { return r == 0x17D2 }

// IsDigit reports whether r is an ASCII or Khmer digit.
func IsDigit(r rune) bool { return lookupFlag(r, flagDigit) }

// IsCurrency reports whether r is one of the recognized currency symbols.
func IsCurrency(r rune) bool {
	if lookupFlag(r, flagCurrency) {
		return true
	}
	return currencyAbove1800[r]
}

// IsSeparator reports whether r is a recognized separator/punctuation mark.
func IsSeparator(r rune) bool {
	if lookupFlag(r, flagSeparator) {
		return true
	}
	return separatorsAbove1800[r]
}

// IsValidSingle reports whether r may stand alone as a single-CP word.
func IsValidSingle(r rune) bool { return lookupFlag(r, flagValidSingle) }
