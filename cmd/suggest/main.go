// jejemonly-suggest - Fuzzy word suggestions using a BK-tree over the
// lexicon's slang keys and canonical words.
// Usage: jejemonly-suggest [options] <query>
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"jejemonly/internal/config"
	"jejemonly/internal/fuzzy"
	"jejemonly/internal/lexicon"
	"jejemonly/internal/ui"

	"github.com/spf13/pflag"
)

func main() {
	defaults := config.Load().Defaults

	lexiconDir := pflag.StringP("lexicon-dir", "d", defaults.LexiconDir, "Directory containing the lexicon files")
	maxDistance := pflag.IntP("distance", "n", defaults.MaxSuggestDist, "Maximum edit distance")
	limit := pflag.IntP("limit", "l", 10, "Maximum results to show")
	jsonOutput := pflag.BoolP("json", "j", false, "Output as JSON")
	slangOnly := pflag.Bool("slang-only", false, "Search only the slang keys, not canonical words")

	pflag.Parse()

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: jejemonly-suggest [options] <query>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	query := strings.ToLower(pflag.Arg(0))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	lex := lexicon.NewManager(lexicon.NewDirStore(*lexiconDir), logger)

	words := lex.SlangWords()
	if !*slangOnly {
		words = append(words, lex.CanonicalWords()...)
	}
	if len(words) == 0 {
		fmt.Fprintln(os.Stderr, "No words found in lexicon")
		os.Exit(1)
	}

	tree := fuzzy.NewBKTree()
	tree.InsertAll(words)

	results := tree.Search(query, *maxDistance)

	// Sort by distance, then alphabetically
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Word < results[j].Word
	})

	if *limit > 0 && len(results) > *limit {
		results = results[:*limit]
	}

	if *jsonOutput {
		output := struct {
			Query   string             `json:"query"`
			MaxDist int                `json:"max_distance"`
			Count   int                `json:"count"`
			Results []fuzzy.Suggestion `json:"results"`
		}{
			Query:   query,
			MaxDist: *maxDistance,
			Count:   len(results),
			Results: results,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(output)
		return
	}

	term := ui.New(false, false)
	term.Info(fmt.Sprintf("Suggestions for %q (max distance: %d)", query, *maxDistance))

	rows := make([][2]string, 0, len(results))
	for _, r := range results {
		word := r.Word
		if normal, ok := lex.Lookup(r.Word); ok && normal != r.Word {
			word = r.Word + " -> " + normal
		}
		rows = append(rows, [2]string{word, strconv.Itoa(r.Distance)})
	}
	term.Suggestions(query, rows)
}
