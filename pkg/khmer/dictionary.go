package khmer

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

// minFreqFloor is the minimum effective count assigned to any word present
// in the frequency file, regardless of its raw count.
const minFreqFloor = 5.0

var (
	coengTa = "្ត"
	coengDa = "្ឍ"
)

// Dictionary is the immutable-after-construction word model: the accepted
// word set, per-word costs, and a prefix trie for fast exact-span
// lookups. Build it once with NewDictionary + Load; afterwards every method
// is read-only and safe to call concurrently from any number of decoders.
type Dictionary struct {
	words       map[string]struct{}
	cost        map[string]float32
	maxWordLen  int
	defaultCost float32
	unknownCost float32
	trie        *trieNode
}

// NewDictionary returns an empty Dictionary. Call Load to populate it before
// use; an unloaded Dictionary has no words and only the fallback costs.
func NewDictionary() *Dictionary {
	return &Dictionary{
		words: make(map[string]struct{}),
		cost:  make(map[string]float32),
		// Implementation-defined fallback for the total_tokens == 0 case
		// (spec §4.1 step 5), applied whenever no frequency data loads.
		defaultCost: 10.0,
		unknownCost: 20.0,
		trie:        newTrieNode(),
	}
}

// Load runs the six-step construction protocol: read words, expand
// variants, post-prune, load frequencies, compute costs, build trie. A
// missing dictionary file is construction-fatal; a missing frequency file
// is construction-recoverable (default-cost fallback, logged as a warning).
func (d *Dictionary) Load(dictPath, freqPath string) error {
	if err := d.readWords(dictPath); err != nil {
		return err
	}
	d.postPrune()

	eff, totalTokens, err := d.loadFrequencies(freqPath)
	if err != nil {
		return err
	}
	d.computeCosts(eff, totalTokens)
	d.buildTrie()
	return nil
}

// readWords implements steps 1-2: read trimmed non-empty lines (dropping
// invalid single-CP words), then expand each loaded word's variant set in a
// second pass over the loaded words only (not iterated to a fixed point —
// spec §9 open question, preserved as specified).
func (d *Dictionary) readWords(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDictionaryNotFound, path, err)
	}
	defer file.Close()

	loaded := make([]string, 0, 1024)
	scanner := bufio.NewScanner(file)
	const maxLineCapacity = 1 << 20
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineCapacity)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		runes := []rune(word)
		if len(runes) == 1 && !IsValidSingle(runes[0]) {
			continue
		}
		d.words[word] = struct{}{}
		loaded = append(loaded, word)
		d.trackMaxLen(len(runes))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDictionaryNotFound, path, err)
	}

	for _, w := range loaded {
		for v := range generateVariants(w) {
			d.words[v] = struct{}{}
			d.trackMaxLen(len([]rune(v)))
		}
	}

	log.Debug().
		Int("words_loaded", len(loaded)).
		Int("words_with_variants", len(d.words)).
		Msg("dictionary words read")
	return nil
}

func (d *Dictionary) trackMaxLen(n int) {
	if n > d.maxWordLen {
		d.maxWordLen = n
	}
}

// generateVariants is the total function over a word's code points that
// produces its orthographic-variant set: the Ta/Da coeng swap, and Coeng-Ro
// reordering applied to the base word and its Ta/Da variant.
func generateVariants(word string) map[string]struct{} {
	variants := make(map[string]struct{})

	if strings.Contains(word, coengTa) {
		variants[strings.ReplaceAll(word, coengTa, coengDa)] = struct{}{}
	}
	if strings.Contains(word, coengDa) {
		variants[strings.ReplaceAll(word, coengDa, coengTa)] = struct{}{}
	}

	base := map[string]struct{}{word: {}}
	for v := range variants {
		base[v] = struct{}{}
	}

	for w := range base {
		if swapped, changed := swapCoengRoOrder(w); changed {
			variants[swapped] = struct{}{}
		}
	}

	return variants
}

// swapCoengRoOrder performs a single non-overlapping left-to-right pass,
// swapping adjacent <Coeng,Ro,Coeng,X> and <Coeng,X,Coeng,Ro> pairs.
func swapCoengRoOrder(word string) (string, bool) {
	runes := []rune(word)
	n := len(runes)
	if n < 4 {
		return word, false
	}

	result := make([]rune, 0, n)
	changed := false
	i := 0
	for i < n {
		if i+3 < n && runes[i] == 0x17D2 && runes[i+1] == 0x179A &&
			runes[i+2] == 0x17D2 && runes[i+3] != 0x179A {
			result = append(result, runes[i+2], runes[i+3], runes[i], runes[i+1])
			i += 4
			changed = true
			continue
		}
		if i+3 < n && runes[i] == 0x17D2 && runes[i+1] != 0x179A &&
			runes[i+2] == 0x17D2 && runes[i+3] == 0x179A {
			result = append(result, runes[i+2], runes[i+3], runes[i], runes[i+1])
			i += 4
			changed = true
			continue
		}
		result = append(result, runes[i])
		i++
	}

	if !changed {
		return word, false
	}
	return string(result), true
}

// postPrune implements step 3: remove compound-OR words, words containing
// the repetition mark, and words starting with coeng.
func (d *Dictionary) postPrune() {
	toRemove := make([]string, 0)

	for word := range d.words {
		runes := []rune(word)

		if strings.Contains(word, "\u17AC") && len(runes) > 1 && isCompoundOr(word, d.words) {
			toRemove = append(toRemove, word)
			continue
		}
		if strings.Contains(word, "\u17D7") {
			toRemove = append(toRemove, word)
			continue
		}
		if strings.HasPrefix(word, "\u17D2") {
			toRemove = append(toRemove, word)
			continue
		}
	}

	for _, w := range toRemove {
		delete(d.words, w)
	}
	delete(d.words, "\u17D7")

	d.maxWordLen = 0
	for w := range d.words {
		d.trackMaxLen(len([]rune(w)))
	}
}

// isCompoundOr reports whether word (known to contain U+17AC and have
// length > 1) satisfies any of the three compound-OR acceptance rules: (a)
// starts with OR and the suffix is in set; (b) ends with OR and the prefix
// is in set; (c) splitting on OR yields pieces that are all in the set,
// empty pieces accepted trivially (spec §9 open question, preserved).
func isCompoundOr(word string, set map[string]struct{}) bool {
	if strings.HasPrefix(word, "\u17AC") {
		if _, ok := set[strings.TrimPrefix(word, "\u17AC")]; ok {
			return true
		}
	}
	if strings.HasSuffix(word, "\u17AC") {
		if _, ok := set[strings.TrimSuffix(word, "\u17AC")]; ok {
			return true
		}
	}
	for _, p := range strings.Split(word, "\u17AC") {
		if p == "" {
			continue
		}
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

// loadFrequencies implements step 4. A missing frequency file is
// construction-recoverable: it logs a warning and returns a nil map with
// zero total tokens, leaving the Dictionary's fallback costs in place.
func (d *Dictionary) loadFrequencies(path string) (map[string]float32, float32, error) {
	file, err := os.Open(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("frequency file not found; using default-cost fallback")
		return nil, 0, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrFrequencyMalformed, path, err)
	}

	var raw map[string]float64
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrFrequencyMalformed, path, err)
	}

	eff := make(map[string]float32, len(raw))
	var totalTokens float32
	for word, count := range raw {
		e := float32(math.Max(count, minFreqFloor))
		eff[word] = e
		totalTokens += e

		for v := range generateVariants(word) {
			if _, exists := eff[v]; !exists {
				eff[v] = e
			}
		}
	}

	log.Debug().Int("frequency_entries", len(raw)).Float32("total_tokens", totalTokens).
		Msg("frequency file loaded")
	return eff, totalTokens, nil
}

// computeCosts implements step 5.
func (d *Dictionary) computeCosts(eff map[string]float32, totalTokens float32) {
	if totalTokens > 0 {
		d.defaultCost = float32(-math.Log10(float64(minFreqFloor / totalTokens)))
		d.unknownCost = d.defaultCost + 5.0
	}

	for w := range d.words {
		if e, ok := eff[w]; ok && e > 0 {
			d.cost[w] = float32(-math.Log10(float64(e / totalTokens)))
		} else {
			d.cost[w] = d.defaultCost
		}
	}

	log.Info().
		Float32("default_cost", d.defaultCost).
		Float32("unknown_cost", d.unknownCost).
		Int("priced_words", len(d.cost)).
		Msg("dictionary costs computed")
}

// buildTrie implements step 6.
func (d *Dictionary) buildTrie() {
	for w, c := range d.cost {
		d.trie.insert([]rune(w), c)
	}
}

// Contains reports exact membership in the accepted word set.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Lookup walks the trie over cps[start:end] and returns the word's cost iff
// that exact span is an accepted word. Zero allocation.
func (d *Dictionary) Lookup(cps []rune, start, end int) (float32, bool) {
	return d.trie.lookup(cps, start, end)
}

// MaxWordLen returns the length, in code points, of the longest accepted
// word.
func (d *Dictionary) MaxWordLen() int { return d.maxWordLen }

// UnknownCost returns the base penalty for the unknown-cluster transition.
func (d *Dictionary) UnknownCost() float32 { return d.unknownCost }

// DefaultCost returns the cost assigned to accepted words absent from the
// frequency file.
func (d *Dictionary) DefaultCost() float32 { return d.defaultCost }

// WordCount returns the number of accepted words, including variants.
func (d *Dictionary) WordCount() int { return len(d.words) }
