// Package ui provides terminal UI components using pterm.
package ui

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
)

// Theme colors for consistent styling
var (
	ColorPrimary   = pterm.FgCyan
	ColorSecondary = pterm.FgLightBlue
	ColorSuccess   = pterm.FgGreen
	ColorWarning   = pterm.FgYellow
	ColorError     = pterm.FgRed
	ColorMuted     = pterm.FgGray
)

// UI wraps pterm components for jejemonly.
type UI struct {
	quiet   bool
	verbose bool
}

// New creates a new UI instance.
func New(quiet, verbose bool) *UI {
	if quiet {
		pterm.DisableOutput()
	}
	return &UI{quiet: quiet, verbose: verbose}
}

// Banner prints the application banner.
func (u *UI) Banner() {
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("jeje", pterm.NewStyle(pterm.FgCyan)),
		pterm.NewLettersFromStringWithStyle("monly", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()

	pterm.DefaultCenter.Println(
		pterm.FgGray.Sprint("Jejemon Text Normalizer"),
	)
	fmt.Println()
}

// Config prints the configuration summary.
func (u *UI) Config(lexiconDir string, mappings, variants, canonical int) {
	pterm.DefaultSection.Println("Configuration")

	data := [][]string{
		{"Lexicon", lexiconDir},
		{"Word Mappings", fmt.Sprintf("%d", mappings)},
		{"Letter Variants", fmt.Sprintf("%d", variants)},
		{"Canonical Words", fmt.Sprintf("%d", canonical)},
	}

	pterm.DefaultTable.WithData(data).Render()
	fmt.Println()
}

// Stages prints the staged pipeline output as a table.
func (u *UI) Stages(stages [][2]string) {
	data := pterm.TableData{{"Stage", "Text"}}
	for _, s := range stages {
		data = append(data, []string{s[0], s[1]})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	fmt.Println()
}

// Result prints a normalization result line.
func (u *UI) Result(original, normalized string) {
	if original == normalized {
		pterm.Info.Println(pterm.FgGray.Sprint(original), pterm.FgGray.Sprint("(unchanged)"))
		return
	}
	pterm.Success.Println(
		pterm.FgGray.Sprint(original),
		pterm.FgCyan.Sprint("->"),
		pterm.FgGreen.Sprint(normalized),
	)
}

// Suggestions prints fuzzy suggestions for a word.
func (u *UI) Suggestions(word string, rows [][2]string) {
	if len(rows) == 0 {
		pterm.Warning.Println("no suggestions for", word)
		return
	}

	data := pterm.TableData{{"Suggestion", "Distance"}}
	for _, r := range rows {
		data = append(data, []string{r[0], r[1]})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	fmt.Println()
}

// FinalReport prints the batch summary report.
func (u *UI) FinalReport(lines, words, changed int64, duration time.Duration) {
	pterm.DefaultSection.Println("Summary")

	throughput := float64(0)
	if duration.Seconds() > 0 {
		throughput = float64(words) / duration.Seconds()
	}

	panel := pterm.DefaultBox.WithTitle("Results").Sprint(
		fmt.Sprintf(
			"  Lines:          %s\n"+
				"  Words:          %s\n"+
				"  Lines Changed:  %s\n"+
				"  Duration:       %s\n"+
				"  Throughput:     %s words/sec",
			pterm.FgGreen.Sprintf("%d", lines),
			pterm.FgCyan.Sprintf("%d", words),
			pterm.FgYellow.Sprintf("%d", changed),
			pterm.FgYellow.Sprint(duration.Round(time.Millisecond)),
			pterm.FgMagenta.Sprintf("%.0f", throughput),
		),
	)
	fmt.Println(panel)
}

// Success prints a success message.
func (u *UI) Success(message string) {
	pterm.Success.Println(message)
}

// Error prints an error message.
func (u *UI) Error(message string) {
	pterm.Error.Println(message)
}

// Warning prints a warning message.
func (u *UI) Warning(message string) {
	pterm.Warning.Println(message)
}

// Info prints an info message.
func (u *UI) Info(message string) {
	pterm.Info.Println(message)
}

// Debug prints a debug message (only in verbose mode).
func (u *UI) Debug(message string) {
	if u.verbose {
		pterm.Debug.Println(message)
	}
}

// Separator prints a visual separator.
func (u *UI) Separator() {
	pterm.DefaultBasicText.Println(pterm.FgGray.Sprint("─────────────────────────────────────────────────────────────"))
}

// Done prints the completion message.
func (u *UI) Done() {
	fmt.Println()
	pterm.DefaultCenter.Println(
		pterm.FgGreen.Sprint("✓ Done!"),
	)
}
