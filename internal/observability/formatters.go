// Package observability provides logging, metrics, and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-mentor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// timeLayout is used for timestamps inside boxes
	timeLayout = "2006-01-02 15:04"
)

// Printer renders view data as boxed text for the CLI.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the box's inner width, counting runes.
func pad(line string) string {
	inner := boxWidth - 4
	n := utf8.RuneCountInString(line)
	if n > inner {
		runes := []rune(line)
		return string(runes[:inner-3]) + "..."
	}
	return line + strings.Repeat(" ", inner-n)
}

// PrintStats outputs the dashboard counters.
func (p *Printer) PrintStats(stats types.DashboardStats) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total users:            %d\n", stats.TotalUsers)
	fmt.Fprintf(&sb, "Resumes uploaded:       %d\n", stats.ResumesUploaded)
	fmt.Fprintf(&sb, "Chat sessions:          %d\n", stats.ChatSessions)
	fmt.Fprintf(&sb, "Suggestions generated:  %d\n", stats.SuggestionsGenerated)
	p.printBox("DASHBOARD", sb.String())
}

// PrintLogs outputs the activity log entries that matched a query.
func (p *Printer) PrintLogs(entries []types.ActivityLogEntry, total int) {
	title := fmt.Sprintf("ACTIVITY LOGS (%d of %d)", len(entries), total)
	if len(entries) == 0 {
		p.printBox(title, "No matching entries")
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "[%s] %s\n", strings.ToUpper(string(e.Status)), e.Action)
		fmt.Fprintf(&sb, "  %s  %s\n", e.Actor, e.Timestamp.UTC().Format(timeLayout))
		fmt.Fprintf(&sb, "  %s\n", e.Details)
	}
	p.printBox(title, sb.String())
}

// PrintSuggestions outputs career suggestions, marking the selected one.
func (p *Printer) PrintSuggestions(suggestions []types.CareerSuggestion, selected string) {
	var sb strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			sb.WriteString("\n")
		}
		marker := " "
		if s.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %s (%d%% match)\n", marker, s.Title, s.MatchScore)
		fmt.Fprintf(&sb, "  %s | %s growth | %s\n", s.SalaryRange, s.GrowthRate, s.Difficulty)

		count := min(len(s.Skills), maxItemsToShow)
		if count > 0 {
			skills := strings.Join(s.Skills[:count], ", ")
			if len(s.Skills) > maxItemsToShow {
				skills += fmt.Sprintf(" +%d", len(s.Skills)-maxItemsToShow)
			}
			fmt.Fprintf(&sb, "  Skills: %s\n", skills)
		}
	}
	p.printBox("CAREER SUGGESTIONS", sb.String())
}

// PrintTranscript outputs a chat conversation.
func (p *Printer) PrintTranscript(messages []types.ChatMessage) {
	if len(messages) == 0 {
		return
	}

	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		speaker := "Mentor"
		if m.IsFromUser {
			speaker = "You"
		}
		fmt.Fprintf(&sb, "%s (%s):\n", speaker, m.Timestamp.Format("15:04"))
		for _, line := range wrap(m.Text, boxWidth-6) {
			fmt.Fprintf(&sb, "  %s\n", line)
		}
	}
	p.printBox("CONVERSATION", sb.String())
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
