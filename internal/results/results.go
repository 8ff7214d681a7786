// Package results renders the strategy × player-count comparison table:
// average score and percent-perfect rate, with standard errors, across a
// fixed battery of simulations. Table layout follows spec.md §6 and the
// reference CLI's two-line format: a header row of player counts over a
// dashed rule, then for each strategy a score row and a percent-perfect
// row, one column per player count.
package results

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vctt94/hanasim/internal/hanabi"
	"github.com/vctt94/hanasim/internal/simulate"
	"github.com/vctt94/hanasim/internal/strategy"
)

// introStyle highlights the table's lead-in sentence when printed to a
// terminal (via --results-table); it is never applied to the copy
// spliced into README.md, which must stay plain markdown.
var introStyle = lipgloss.NewStyle().Bold(true)

// Render styles t's intro line for terminal display, leaving the
// fixed-width table body untouched so its columns still line up.
func Render(table string) string {
	lines := strings.SplitN(table, "\n\n", 2)
	if len(lines) != 2 {
		return table
	}
	return introStyle.Render(lines[0]) + "\n\n" + lines[1]
}

// Config controls the table's battery of simulations.
type Config struct {
	Strategies []string
	PlayerNums []int
	Seed       int64
	NumTrials  int
	NumThreads int
}

// DefaultConfig mirrors the reference CLI's fixed `--results-table`
// battery: cheat and info strategies, 2 through 5 players, 20000 trials.
func DefaultConfig() Config {
	return Config{
		Strategies: []string{"cheat", "info"},
		PlayerNums: []int{2, 3, 4, 5},
		Seed:       0,
		NumTrials:  20000,
		NumThreads: 8,
	}
}

const (
	space      = "         "
	dashes     = "---------"
	dashesLong = "------------------"
)

func formatName(name string) string { return fmt.Sprintf(" %-7s ", name) }
func formatPlayers(n int) string    { return fmt.Sprintf("   %dp    ", n) }
func formatPercent(pct, stderr float64) string {
	return fmt.Sprintf(" %05.2f ± %.2f %% ", pct, stderr)
}
func formatScore(avg, stderr float64) string {
	return fmt.Sprintf(" %07.4f ± %.4f ", avg, stderr)
}

// twoLines is one rendered (value row, rule row) pair of table cells
// across every player count, still unjoined into a single "|"-delimited
// line.
type twoLines struct {
	a, b []string
}

func combine(cells []string) string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(c)
		sb.WriteString("|")
	}
	return sb.String()
}

func makeTwoLines(playerNums []int, head [2]string, block func(int) (string, string)) twoLines {
	a := make([]string, 0, len(playerNums)+1)
	b := make([]string, 0, len(playerNums)+1)
	a = append(a, head[0])
	b = append(b, head[1])
	for _, n := range playerNums {
		va, vb := block(n)
		a = append(a, va)
		b = append(b, vb)
	}
	return twoLines{a: a, b: b}
}

func concatTwoLines(rows []twoLines) string {
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(combine(r.a))
		sb.WriteString("\n")
		sb.WriteString(combine(r.b))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Table runs cfg's full battery through registry and renders it as a
// markdown-friendly fixed-width table.
func Table(registry strategy.Registry, cfg Config) (string, error) {
	intro := fmt.Sprintf(
		"On the first %d seeds, we have these scores and win rates (average ± standard error):\n\n",
		cfg.NumTrials,
	)

	header := makeTwoLines(cfg.PlayerNums, [2]string{space, dashes}, func(n int) (string, string) {
		return formatPlayers(n), dashesLong
	})

	rows := make([]twoLines, 0, len(cfg.Strategies)+1)
	rows = append(rows, header)

	for _, name := range cfg.Strategies {
		strategyConfig, err := registry.Get(name)
		if err != nil {
			return "", err
		}

		row := makeTwoLines(cfg.PlayerNums, [2]string{formatName(name), space}, func(n int) (string, string) {
			opts, err := hanabi.DefaultGameOptions(n)
			if err != nil {
				return formatScore(0, 0), formatPercent(0, 0)
			}
			report := simulate.Simulate(strategyConfig, opts, name, simulate.Options{
				FirstSeed:  cfg.Seed,
				NumTrials:  cfg.NumTrials,
				NumThreads: cfg.NumThreads,
			})
			avg := report.Histogram.Average()
			scoreStderr := report.Histogram.StdErr()
			pctPerfect := report.Histogram.PercentPerfect(simulate.MaxScore)
			pctStderr := report.Histogram.PercentPerfectStdErr(simulate.MaxScore)
			return formatScore(avg, scoreStderr), formatPercent(pctPerfect, pctStderr)
		})
		rows = append(rows, row)
	}

	return intro + concatTwoLines(rows), nil
}

// Separator is the fixed marker WriteToReadme splices the table in
// after, left in place so README.md can be updated repeatedly.
const Separator = `
## Results (auto-generated)

To reproduce:
` + "```" + `
hanasim --results-table
` + "```" + `

To update this file:
` + "```" + `
hanasim --write-results-table
` + "```" + `

`

// WriteToReadme reads readmePath, truncates anything after Separator, and
// appends a freshly rendered table. It errors instead of panicking if the
// separator is missing, unlike the reference implementation.
func WriteToReadme(readmePath string, table string) error {
	contents, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("results: reading %s: %w", readmePath, err)
	}

	parts := strings.SplitN(string(contents), Separator, 2)
	if len(parts) != 2 {
		return fmt.Errorf("results: %s has been modified in the Results section", readmePath)
	}

	newContents := parts[0] + Separator + table
	if err := os.WriteFile(readmePath, []byte(newContents), 0o644); err != nil {
		return fmt.Errorf("results: writing %s: %w", readmePath, err)
	}
	return nil
}
