package khmer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildDictionary writes words and a frequency map to temp files and loads a
// Dictionary from them, so tests never depend on an external data corpus.
func buildDictionary(t *testing.T, words []string, freq map[string]float64) *Dictionary {
	t.Helper()

	dir := t.TempDir()
	dictPath := filepath.Join(dir, "words.txt")
	freqPath := filepath.Join(dir, "freq.json")

	wordsFile, err := os.Create(dictPath)
	require.NoError(t, err)
	for _, w := range words {
		fmt.Fprintln(wordsFile, w)
	}
	require.NoError(t, wordsFile.Close())

	freqFile, err := os.Create(freqPath)
	require.NoError(t, err)
	enc := `{`
	first := true
	for w, c := range freq {
		if !first {
			enc += ","
		}
		first = false
		enc += fmt.Sprintf("%q:%v", w, c)
	}
	enc += `}`
	_, err = freqFile.WriteString(enc)
	require.NoError(t, err)
	require.NoError(t, freqFile.Close())

	dict := NewDictionary()
	require.NoError(t, dict.Load(dictPath, freqPath))
	return dict
}
