// jejemonly CLI - Jejemon text normalizer.
// Usage: jejemonly [options] [text...]
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"jejemonly/internal/config"
	"jejemonly/internal/lexicon"
	"jejemonly/internal/metrics"
	"jejemonly/internal/normalizer"
	"jejemonly/internal/preprocess"
	"jejemonly/internal/tokenizer"
	"jejemonly/internal/ui"

	"github.com/spf13/pflag"
)

// exitWord ends the interactive session.
const exitWord = "bye"

type output struct {
	normalizer.Result
	Confidence *float64 `json:"confidence,omitempty"`
}

func main() {
	defaults := config.Load().Defaults

	lexiconDir := pflag.StringP("lexicon-dir", "d", defaults.LexiconDir, "Directory containing the lexicon files")
	inputFile := pflag.StringP("file", "f", "", "Normalize a file line by line")
	outputDir := pflag.StringP("output-dir", "o", "output", "Output directory for metrics")
	jsonOutput := pflag.BoolP("json", "j", defaults.JSON, "Output staged results as JSON")
	confidence := pflag.BoolP("confidence", "c", defaults.Confidence, "Include the confidence score")
	foldASCII := pflag.Bool("fold-ascii", defaults.FoldASCII, "Fold accented input to ASCII before normalizing")
	threshold := pflag.Float64("threshold", defaults.FuzzyThreshold, "Fuzzy match acceptance threshold")
	trace := pflag.BoolP("trace", "t", defaults.Trace, "Print pipeline trace to stderr")
	addVariant := pflag.String("add-variant", "", "Add a letter variant as letter=variant and exit")
	quiet := pflag.BoolP("quiet", "q", defaults.Quiet, "Suppress progress output")
	verbose := pflag.BoolP("verbose", "v", defaults.Verbose, "Verbose logging")
	writeMetrics := pflag.Bool("metrics", defaults.Metrics, "Write metrics for batch runs")

	pflag.Parse()

	term := ui.New(*quiet || *jsonOutput, *verbose)
	logger := newLogger(*quiet, *verbose)

	store := lexicon.NewDirStore(*lexiconDir)
	lex := lexicon.NewManager(store, logger)
	rules, err := store.LoadContextRules()
	if err != nil {
		logger.Warn("context rule store unavailable, continuing without context rules", "error", err)
	}

	norm := normalizer.New(lex, rules, logger)
	norm.SetThreshold(*threshold)
	if *trace {
		norm.SetTrace(func(stage, detail string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, detail)
		})
	}

	if *addVariant != "" {
		letter, variant, ok := strings.Cut(*addVariant, "=")
		if !ok || letter == "" || variant == "" {
			fmt.Fprintln(os.Stderr, "Error: --add-variant expects letter=variant")
			os.Exit(1)
		}
		norm.AddVariant(letter, variant)
		term.Success(fmt.Sprintf("Variant %q registered for letter %q", variant, letter))
		return
	}

	switch {
	case *inputFile != "":
		runBatch(norm, term, *inputFile, *outputDir, batchOptions{
			foldASCII:    *foldASCII,
			jsonOutput:   *jsonOutput,
			writeMetrics: *writeMetrics,
			quiet:        *quiet,
			lexiconDir:   *lexiconDir,
		})
	case pflag.NArg() > 0:
		text := strings.Join(pflag.Args(), " ")
		printOne(norm, text, *foldASCII, *jsonOutput, *confidence)
	default:
		runREPL(norm, term, lex, *lexiconDir, *foldASCII, *confidence)
	}
}

// newLogger builds the process logger: warnings only by default, debug
// when verbose, errors only when quiet.
func newLogger(quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printOne normalizes a single input and writes it to stdout.
func printOne(norm *normalizer.Normalizer, text string, foldASCII, jsonOutput, withConfidence bool) {
	if foldASCII {
		text = preprocess.FoldASCII(text)
	}
	result := norm.NormalizeText(text)

	if jsonOutput {
		out := output{Result: result}
		if withConfidence {
			score := norm.Confidence(result.Original, result.Normalized)
			out.Confidence = &score
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
		return
	}

	fmt.Println(result.Normalized)
	if withConfidence {
		fmt.Printf("confidence: %.3f\n", norm.Confidence(result.Original, result.Normalized))
	}
}

type batchOptions struct {
	foldASCII    bool
	jsonOutput   bool
	writeMetrics bool
	quiet        bool
	lexiconDir   string
}

// runBatch normalizes a file line by line, printing each normalized line
// to stdout and collecting run metrics.
func runBatch(norm *normalizer.Normalizer, term *ui.UI, path, outputDir string, opts batchOptions) {
	file, err := os.Open(path)
	if err != nil {
		term.Error(fmt.Sprintf("open input: %v", err))
		os.Exit(1)
	}
	defer file.Close()

	collector := metrics.NewCollector()
	collector.SetConfig("lexicon_dir", opts.lexiconDir)
	collector.SetConfig("input_file", path)
	collector.SetConfig("fold_ascii", opts.foldASCII)

	collector.StartStage("normalize")
	enc := json.NewEncoder(os.Stdout)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if opts.foldASCII {
			line = preprocess.FoldASCII(line)
		}

		result := norm.NormalizeText(line)
		words := len(tokenizer.Tokenize(result.Tokenized))
		score := norm.Confidence(result.Original, result.Normalized)
		collector.RecordLine(words, result.Original != result.Normalized, score)

		if opts.jsonOutput {
			enc.Encode(output{Result: result, Confidence: &score})
		} else {
			fmt.Println(result.Normalized)
		}
	}
	if err := scanner.Err(); err != nil {
		term.Error(fmt.Sprintf("read input: %v", err))
		os.Exit(1)
	}
	collector.EndStage("normalize")

	runMetrics := collector.Finalize()

	if opts.writeMetrics {
		reporter := metrics.NewReporter(outputDir)
		previousRun, _ := reporter.GetLastRun()

		if err := reporter.Write(runMetrics); err != nil {
			term.Warning(fmt.Sprintf("Failed to write metrics: %v", err))
		} else {
			term.Debug(fmt.Sprintf("Metrics written: %s", runMetrics.RunID))
		}

		if previousRun != nil {
			if comparison := metrics.CompareRuns(runMetrics, previousRun); comparison != nil {
				term.Info(metrics.FormatComparison(comparison))
			}
		}
	}

	if !opts.quiet && !opts.jsonOutput {
		term.FinalReport(
			runMetrics.Totals.LinesProcessed,
			runMetrics.Totals.WordsProcessed,
			runMetrics.Totals.LinesChanged,
			collector.GetStageDuration("normalize"),
		)
	}
}

// runREPL is the interactive loop: one input line per result, ended by
// the exit word or EOF.
func runREPL(norm *normalizer.Normalizer, term *ui.UI, lex *lexicon.Manager, lexiconDir string, foldASCII, withConfidence bool) {
	term.Banner()
	term.Config(lexiconDir, len(lex.SlangWords()), lex.VariantCount(), len(lex.CanonicalWords()))
	term.Info(fmt.Sprintf("Type text to normalize, %q to quit", exitWord))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, exitWord) {
			break
		}

		input := line
		if foldASCII {
			input = preprocess.FoldASCII(input)
		}
		result := norm.NormalizeText(input)

		term.Stages([][2]string{
			{"original", result.Original},
			{"punctuation", result.PunctuationEvaluated},
			{"characters", result.CharacterReplaced},
			{"tokens", result.Tokenized},
			{"normalized", result.Normalized},
		})
		term.Result(result.Original, result.Normalized)
		if withConfidence {
			term.Info(fmt.Sprintf("confidence: %.3f", norm.Confidence(result.Original, result.Normalized)))
		}
		term.Separator()
	}

	term.Done()
}
