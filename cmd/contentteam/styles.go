package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/team"
)

// Centralized style definitions for terminal output.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	labelStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	agentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // magenta
)

// mdRenderer renders markdown to terminal-formatted output.
var mdRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return
	}
	mdRenderer = r
}

// renderMarkdown converts markdown text to terminal-formatted output.
func renderMarkdown(text string) string {
	if mdRenderer == nil {
		return text
	}
	out, err := mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// truncate returns s shortened to at most width terminal cells, with "..."
// appended if truncated. Newlines are replaced with spaces for single-line
// display.
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func printResult(result *team.Result) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("=== %s ===", result.ContentType)))
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d messages, %d rounds, %d words, %d tokens",
		result.Stats.TotalMessages, result.Stats.Rounds, result.Stats.TotalWords, result.Stats.TotalTokens)))
	fmt.Println()

	fmt.Println(labelStyle.Render("Contributions:"))
	for _, c := range result.Contributions {
		fmt.Printf("  %s %s\n",
			agentStyle.Render(fmt.Sprintf("%-18s", c.Agent)),
			dimStyle.Render(fmt.Sprintf("%d messages, %d words", c.Messages, c.Words)))
	}
	fmt.Println()

	if len(result.Evolution) > 0 {
		fmt.Println(labelStyle.Render("Content evolution:"))
		for _, e := range result.Evolution {
			fmt.Printf("  [%d] %s %s\n", e.Step,
				agentStyle.Render(e.Agent),
				dimStyle.Render(truncate(e.Preview, 70)))
		}
		fmt.Println()
	}

	fmt.Println(labelStyle.Render(fmt.Sprintf("Final content (by %s):", result.Final.Agent)))
	fmt.Println(renderMarkdown(result.Final.Text))
}

func printReport(report *team.Report) {
	fmt.Println(headerStyle.Render("=== Performance Report ==="))
	fmt.Printf("%s %d\n", labelStyle.Render("Projects:"), report.TotalProjects)
	fmt.Printf("%s %d\n", labelStyle.Render("Messages:"), report.TotalMessages)
	fmt.Printf("%s %d\n", labelStyle.Render("Words:"), report.TotalWords)

	if len(report.Recent) == 0 {
		fmt.Println(dimStyle.Render("No saved projects yet."))
		return
	}

	fmt.Println(labelStyle.Render("Recent projects:"))
	for _, r := range report.Recent {
		fmt.Printf("  %s %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			dimStyle.Render(fmt.Sprintf("%s (%d messages, %d words)",
				r.ContentType, r.Stats.TotalMessages, r.Stats.TotalWords)))
	}
}
