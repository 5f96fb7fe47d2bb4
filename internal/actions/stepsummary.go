package actions

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/waitfor/pkg/waiter"
)

// RenderStepSummary builds the markdown appended to $GITHUB_STEP_SUMMARY
// after a successful wait. Columns are padded so the raw file reads as a
// table too.
func RenderStepSummary(summaries []waiter.Summary, took string) string {
	titler := cases.Title(language.English)
	rows := [][]string{{"Dependency", "Last job", "Conclusion", "Completed at"}}
	for _, s := range summaries {
		completed := "-"
		if s.LastJob.CompletedAt != nil {
			completed = s.LastJob.CompletedAt.UTC().Format(time.DateTime) + " UTC"
		}
		rows = append(rows, []string{
			escapeCell(s.Dependency),
			escapeCell(s.LastJob.Name),
			titler.String(s.LastJob.Conclusion.String()),
			completed,
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	b.WriteString("### Job dependencies\n\n")
	for i, row := range rows {
		writeRow(&b, row, widths)
		if i == 0 {
			sep := make([]string, len(widths))
			for j, w := range widths {
				sep[j] = strings.Repeat("-", max(w, 3))
			}
			writeRow(&b, sep, widths)
		}
	}
	fmt.Fprintf(&b, "\nAll job dependencies completed with success in %s 🎉\n", took)
	return b.String()
}

// AppendStepSummary appends content to the step summary file at path.
func AppendStepSummary(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening step summary: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing step summary: %w", err)
	}
	return f.Close()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, cell := range cells {
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(cell, widths[i]))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
