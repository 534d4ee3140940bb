// Command khmerseg batch-segments Khmer text files using pkg/khmer. The CLI
// surface itself (flag parsing, file I/O, batch driving) sits outside the
// core segmenter's scope; it is specified and implemented here only as the
// reference interop surface.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/khmerseg/segmenter/pkg/khmer"
)

// outputRecord is one JSON line of batch output.
type outputRecord struct {
	ID       int      `json:"id"`
	Input    string   `json:"input"`
	Segments []string `json:"segments"`
}

func main() {
	dictPath := flag.String("dict", "../data/khmer_dictionary_words.txt", "Path to dictionary file")
	freqPath := flag.String("freq", "../data/khmer_word_frequencies.json", "Path to frequency file")
	inputPath := flag.String("input", "", "Input text file (required)")
	outputPath := flag.String("output", "", "Output JSON-lines file (benchmark mode if omitted)")
	limit := flag.Int("limit", 0, "Limit number of lines (0 = unlimited)")
	threads := flag.Int("threads", 0, "Number of worker goroutines (0 = NumCPU)")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")

	flag.StringVar(dictPath, "d", *dictPath, "Path to dictionary file (short)")
	flag.StringVar(freqPath, "f", *freqPath, "Path to frequency file (short)")
	flag.StringVar(inputPath, "i", "", "Input text file (short)")
	flag.StringVar(outputPath, "o", "", "Output JSON-lines file (short)")
	flag.IntVar(limit, "l", 0, "Limit number of lines (short)")
	flag.IntVar(threads, "t", 0, "Number of worker goroutines (short)")

	flag.Parse()

	zerolog.SetGlobalLevel(parseLogLevel(*logLevel))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: khmerseg --input <file> [--output <file>] [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*dictPath, *freqPath, *inputPath, *outputPath, *limit, *threads); err != nil {
		log.Fatal().Err(err).Msg("khmerseg failed")
	}
}

func parseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func run(dictPath, freqPath, inputPath, outputPath string, limit, threads int) error {
	log.Info().Str("dict", dictPath).Str("freq", freqPath).Msg("initializing segmenter")

	startLoad := time.Now()
	dict := khmer.NewDictionary()
	if err := dict.Load(dictPath, freqPath); err != nil {
		return err
	}
	loadSeconds := time.Since(startLoad).Seconds()

	lines, err := readLines(inputPath, limit)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	numWorkers := threads
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	log.Info().Int("lines", len(lines)).Int("workers", numWorkers).Msg("processing")

	startProcess := time.Now()
	results, err := segmentBatch(lines, dict, numWorkers)
	if err != nil {
		return err
	}
	processSeconds := time.Since(startProcess).Seconds()

	if outputPath != "" {
		if err := writeResults(outputPath, results); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	linesPerSecond := float64(len(lines)) / processSeconds
	log.Info().
		Int("lines", len(lines)).
		Int("threads", numWorkers).
		Float64("load_seconds", loadSeconds).
		Float64("process_seconds", processSeconds).
		Float64("lines_per_second", linesPerSecond).
		Msg("run complete")
	return nil
}

func readLines(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	const maxCapacity = 1 << 20
	scanner.Buffer(make([]byte, 0, 64*1024), maxCapacity)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if limit > 0 && len(lines) >= limit {
			break
		}
	}
	return lines, scanner.Err()
}

// segmentBatch runs the embarrassingly-parallel map line -> Segment() over
// an errgroup-managed worker pool, one Segmenter per worker so DP scratch
// contention stays goroutine-local. Results land in a pre-sized slice by
// index, so output order matches input order regardless of completion
// order.
func segmentBatch(lines []string, dict *khmer.Dictionary, numWorkers int) ([]outputRecord, error) {
	results := make([]outputRecord, len(lines))
	jobs := make(chan int, len(lines))
	for i := range lines {
		jobs <- i
	}
	close(jobs)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < numWorkers; w++ {
		g.Go(func() error {
			segmenter := khmer.NewSegmenter(dict)
			for i := range jobs {
				results[i] = outputRecord{
					ID:       i,
					Input:    lines[i],
					Segments: segmenter.Segment(lines[i]),
				}
			}
			return nil
		})
	}
	return results, g.Wait()
}

func writeResults(path string, results []outputRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, r := range results {
		b, err := sonic.Marshal(r)
		if err != nil {
			return err
		}
		writer.Write(b)
		writer.WriteByte('\n')
	}
	return writer.Flush()
}
