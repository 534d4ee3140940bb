package khmer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryLoadBasic(t *testing.T) {
	assert := assert.New(t)

	dict := buildDictionary(t, []string{"សួស្តី", "កម្ពុជា"}, map[string]float64{
		"សួស្តី":  100,
		"កម្ពុជា": 50,
	})

	assert.True(dict.Contains("សួស្តី"))
	assert.True(dict.Contains("កម្ពុជា"))
	assert.False(dict.Contains("មិនមាន"))
	assert.Equal(7, dict.MaxWordLen())
}

func TestDictionaryMissingFileIsFatal(t *testing.T) {
	dict := NewDictionary()
	err := dict.Load(filepath.Join(t.TempDir(), "nope.txt"), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrDictionaryNotFound)
}

func TestDictionaryMissingFrequencyFallsBackToDefaultCost(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	dictPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(dictPath, []byte("សួស្តី\n"), 0o644))

	dict := NewDictionary()
	err := dict.Load(dictPath, filepath.Join(dir, "missing_freq.json"))
	require.NoError(t, err)

	assert.True(dict.Contains("សួស្តី"))
	cost, ok := dict.Lookup([]rune("សួស្តី"), 0, 6)
	assert.True(ok)
	assert.Equal(dict.DefaultCost(), cost)
}

func TestDictionarySkipsInvalidSingleCharWords(t *testing.T) {
	assert := assert.New(t)

	// 0x1783 is a consonant not in the valid-single set.
	dict := buildDictionary(t, []string{string(rune(0x1783)), "កម្ពុជា"}, nil)

	assert.False(dict.Contains(string(rune(0x1783))))
	assert.True(dict.Contains("កម្ពុជា"))
}

func TestDictionaryKeepsValidSingleCharWords(t *testing.T) {
	assert := assert.New(t)

	dict := buildDictionary(t, []string{string(rune(0x1780))}, nil)
	assert.True(dict.Contains(string(rune(0x1780))))
}

func TestDictionaryVariantGeneration(t *testing.T) {
	assert := assert.New(t)

	word := "ក" + coengTa + "ក"
	dict := buildDictionary(t, []string{word}, nil)

	variant := "ក" + coengDa + "ក"
	assert.True(dict.Contains(word))
	assert.True(dict.Contains(variant), "Ta/Da coeng swap must produce a reachable variant")
}

func TestDictionaryCompoundOrPruning(t *testing.T) {
	assert := assert.New(t)

	// "A" + OR + "B" is a compound-OR word; both pieces are already in the
	// set, so it must be pruned rather than kept as a distinct entry.
	a := "កក"
	b := "គគ"
	compound := a + "ឬ" + b

	dict := buildDictionary(t, []string{a, b, compound}, nil)

	assert.True(dict.Contains(a))
	assert.True(dict.Contains(b))
	assert.False(dict.Contains(compound), "compound-OR word whose pieces are both known must be pruned")
}

func TestDictionaryCompoundOrKeptWhenPieceUnknown(t *testing.T) {
	assert := assert.New(t)

	a := "កក"
	compound := a + "ឬ" + "ឆឆ"

	dict := buildDictionary(t, []string{a, compound}, nil)

	assert.True(dict.Contains(compound), "compound-OR word must survive pruning when a piece is not independently known")
}

func TestDictionaryRepetitionMarkAndLeadingCoengPruned(t *testing.T) {
	assert := assert.New(t)

	withRepeat := "កកៗ"
	withLeadingCoeng := "្កក"

	dict := buildDictionary(t, []string{withRepeat, withLeadingCoeng, "កក"}, nil)

	assert.False(dict.Contains(withRepeat))
	assert.False(dict.Contains(withLeadingCoeng))
	assert.True(dict.Contains("កក"))
}

func TestDictionaryCostComputation(t *testing.T) {
	assert := assert.New(t)

	dict := buildDictionary(t, []string{"សួស្តី", "កម្ពុជា"}, map[string]float64{
		"សួស្តី":  900,
		"កម្ពុជា": 100,
	})

	costA, ok := dict.Lookup([]rune("សួស្តី"), 0, 6)
	assert.True(ok)
	costB, ok := dict.Lookup([]rune("កម្ពុជា"), 0, 7)
	assert.True(ok)

	assert.Less(costA, costB, "a more frequent word must have a lower cost")
}

func TestDictionaryMalformedFrequencyFile(t *testing.T) {
	dir := t.TempDir()
	dictPath := filepath.Join(dir, "words.txt")
	freqPath := filepath.Join(dir, "freq.json")
	require.NoError(t, os.WriteFile(dictPath, []byte("កក\n"), 0o644))
	require.NoError(t, os.WriteFile(freqPath, []byte("not json"), 0o644))

	dict := NewDictionary()
	err := dict.Load(dictPath, freqPath)
	assert.True(t, errors.Is(err, ErrFrequencyMalformed))
}
