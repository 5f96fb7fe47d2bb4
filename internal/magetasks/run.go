package magetasks

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Section is one step of RunAll.
type Section struct {
	Name        string
	Description string
	Run         func() error
}

var sectionSummary string

// Run executes a tool with its output attached to the terminal.
func Run(label, name string, args ...string) error {
	fmt.Fprintf(out, "▸ %s\n", label)
	cmd := exec.Command(name, args...)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		PrintError(label + " failed")
		return err
	}
	return nil
}

// SetSectionSummary records the line printed when the current section ends.
func SetSectionSummary(msg string) {
	sectionSummary = msg
}

// RunSections runs sections in order and stops at the first failure. It
// returns the names of the sections that completed.
func RunSections(sections ...Section) ([]string, error) {
	var done []string
	for _, s := range sections {
		PrintH1Header(s.Name)
		if s.Description != "" {
			PrintInfo(s.Description)
		}
		sectionSummary = ""
		if err := s.Run(); err != nil {
			return done, fmt.Errorf("%s: %w", strings.ToLower(s.Name), err)
		}
		if sectionSummary != "" {
			PrintSuccess(sectionSummary)
		}
		done = append(done, s.Name)
	}
	return done, nil
}
