package magetasks

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TestEvent represents a single event from go test -json output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// PackageResult holds aggregated test results for a package.
type PackageResult struct {
	Name        string
	Passed      int
	Failed      int
	Skipped     int
	Duration    time.Duration
	Coverage    float64
	FailedTests []string
	Done        bool
}

// TestFormatter aggregates go test -json events into per-package lines.
type TestFormatter struct {
	packages map[string]*PackageResult
	w        io.Writer
	pass     lipgloss.Style
	fail     lipgloss.Style
	muted    lipgloss.Style
}

// NewTestFormatter creates a test formatter. Colors are used only on a
// terminal.
func NewTestFormatter(w io.Writer, isTerminal bool) *TestFormatter {
	f := &TestFormatter{
		packages: make(map[string]*PackageResult),
		w:        w,
		pass:     lipgloss.NewStyle(),
		fail:     lipgloss.NewStyle(),
		muted:    lipgloss.NewStyle(),
	}
	if isTerminal {
		f.pass = f.pass.Foreground(lipgloss.Color("42"))
		f.fail = f.fail.Foreground(lipgloss.Color("196")).Bold(true)
		f.muted = f.muted.Foreground(lipgloss.Color("245"))
	}
	return f
}

// RunTests executes go test with JSON output and formats results.
func (f *TestFormatter) RunTests(args []string) error {
	cmdArgs := append([]string{"test", "-json"}, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	if err = cmd.Start(); err != nil {
		return fmt.Errorf("failed to start tests: %w", err)
	}
	if err := f.Consume(stdout); err != nil {
		return err
	}
	err = cmd.Wait()
	f.Render()
	return err
}

// Consume reads events until r is exhausted. Malformed lines are skipped.
func (f *TestFormatter) Consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var event TestEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		f.processEvent(event)
	}
	return scanner.Err()
}

func (f *TestFormatter) processEvent(event TestEvent) {
	if event.Package == "" {
		return
	}
	pkg := f.getOrCreatePackage(event.Package)

	switch event.Action {
	case "pass", "fail":
		if event.Test == "" {
			pkg.Duration = time.Duration(event.Elapsed * float64(time.Second))
			pkg.Done = true
			if event.Action == "fail" && pkg.Failed == 0 {
				pkg.Failed = 1
			}
			return
		}
		if event.Action == "pass" {
			pkg.Passed++
		} else {
			pkg.Failed++
			pkg.FailedTests = append(pkg.FailedTests, event.Test)
		}
	case "skip":
		if event.Test != "" {
			pkg.Skipped++
		} else {
			pkg.Done = true
		}
	case "output":
		if strings.Contains(event.Output, "coverage:") && strings.Contains(event.Output, "% of statements") {
			f.parseCoverage(pkg, event.Output)
		}
	}
}

func (f *TestFormatter) getOrCreatePackage(name string) *PackageResult {
	if pkg, ok := f.packages[name]; ok {
		return pkg
	}
	pkg := &PackageResult{Name: name}
	f.packages[name] = pkg
	return pkg
}

func (f *TestFormatter) parseCoverage(pkg *PackageResult, output string) {
	idx := strings.Index(output, "coverage:")
	var cov float64
	_, _ = fmt.Sscanf(output[idx:], "coverage: %f%% of statements", &cov)
	if cov > 0 {
		pkg.Coverage = cov
	}
}

// Results returns finished packages sorted by name.
func (f *TestFormatter) Results() []*PackageResult {
	var out []*PackageResult
	for _, pkg := range f.packages {
		if pkg.Done {
			out = append(out, pkg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Render prints one line per package followed by the failed tests.
func (f *TestFormatter) Render() {
	for _, pkg := range f.Results() {
		status := f.pass.Render("ok")
		if pkg.Failed > 0 {
			status = f.fail.Render("FAIL")
		}
		line := fmt.Sprintf("%s %s %s", status, pkg.Name,
			f.muted.Render(fmt.Sprintf("%d passed, %d failed, %d skipped in %s", pkg.Passed, pkg.Failed, pkg.Skipped, pkg.Duration.Round(time.Millisecond))))
		if pkg.Coverage > 0 {
			line += f.muted.Render(fmt.Sprintf(", %.1f%% coverage", pkg.Coverage))
		}
		fmt.Fprintln(f.w, line)
		for _, name := range pkg.FailedTests {
			fmt.Fprintln(f.w, "    "+f.fail.Render("✗ "+name))
		}
	}
}

// RunFormattedTests runs tests with the custom formatter.
func RunFormattedTests(args []string) error {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return NewTestFormatter(os.Stdout, isTerminal).RunTests(args)
}

// TestReport runs every test with coverage and prints a summary.
func TestReport() error {
	PrintH2Header("Tests")
	if err := RunFormattedTests([]string{"-cover", "./..."}); err != nil {
		PrintError("Tests failed")
		return err
	}
	SetSectionSummary("All tests passed")
	return nil
}
