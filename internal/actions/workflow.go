// Package actions writes waitfor's logs and results, either as GitHub
// Actions workflow commands or as styled terminal output.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Workflow emits GitHub Actions workflow commands. It is safe for
// concurrent use.
type Workflow struct {
	mu         sync.Mutex
	w          io.Writer
	outputPath string
	delimiter  func() string
}

// NewWorkflow writes commands to w. outputPath is the $GITHUB_OUTPUT file;
// when empty, outputs fall back to the set-output command.
func NewWorkflow(w io.Writer, outputPath string) *Workflow {
	return &Workflow{
		w:          w,
		outputPath: outputPath,
		delimiter:  func() string { return "ghadelimiter_" + uuid.NewString() },
	}
}

func (a *Workflow) Info(msg string) { a.println(msg) }

func (a *Workflow) Debug(msg string) { a.command("debug", "", msg) }

func (a *Workflow) Warning(msg string) { a.command("warning", "", msg) }

func (a *Workflow) Error(msg string) { a.command("error", "", msg) }

func (a *Workflow) StartGroup(label string) { a.command("group", "", label) }

func (a *Workflow) EndGroup() { a.command("endgroup", "", "") }

// SetFailed logs msg as an error annotation. The exit status is the
// caller's job.
func (a *Workflow) SetFailed(msg string) { a.Error(msg) }

// SetOutput publishes a step output.
func (a *Workflow) SetOutput(key, value string) error {
	if a.outputPath == "" {
		a.command("set-output", "name="+escapeProperty(key), value)
		return nil
	}
	entry, err := a.fileCommand(key, value)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	f, err := os.OpenFile(a.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	if _, err := f.WriteString(entry); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	return f.Close()
}

// fileCommand renders key and value in the heredoc form the runner parses.
func (a *Workflow) fileCommand(key, value string) (string, error) {
	d := a.delimiter()
	if strings.Contains(key, d) || strings.Contains(value, d) {
		return "", fmt.Errorf("output %s contains the delimiter %s", key, d)
	}
	return key + "<<" + d + "\n" + value + "\n" + d + "\n", nil
}

func (a *Workflow) command(name, props, msg string) {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(name)
	if props != "" {
		b.WriteString(" ")
		b.WriteString(props)
	}
	b.WriteString("::")
	b.WriteString(escapeData(msg))
	a.println(b.String())
}

func (a *Workflow) println(line string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintln(a.w, line)
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string { return dataEscaper.Replace(s) }

func escapeProperty(s string) string { return propertyEscaper.Replace(s) }
