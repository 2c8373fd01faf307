package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"codemap/internal/adapter/searcher"
	"codemap/internal/domain"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sigStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	docStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	iconStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// formatResult renders one search result as a two-to-four line block:
// icon and name with score, location, then signature and doc when
// present.
func formatResult(r domain.SearchResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s  %s\n",
		iconStyle.Render(r.Symbol.Kind.Icon()),
		nameStyle.Render(r.Symbol.Name),
		scoreStyle.Render(fmt.Sprintf("(%.0f)", r.Score)),
	))
	sb.WriteString("  " + pathStyle.Render(fmt.Sprintf("%s:%d", r.FilePath, r.Symbol.Line)) + "\n")

	if r.Symbol.Signature != "" {
		sb.WriteString("  " + sigStyle.Render(r.Symbol.Signature) + "\n")
	}
	if r.Symbol.Doc != "" {
		sb.WriteString("  " + docStyle.Render(r.Symbol.Doc) + "\n")
	}

	return sb.String()
}

// formatFileScore renders one task-context ranking line.
func formatFileScore(fs searcher.FileScore) string {
	return fmt.Sprintf("%s  %s",
		scoreStyle.Render(fmt.Sprintf("%5.1f", fs.Score)),
		pathStyle.Render(fs.Path),
	)
}
