//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/waitfor/internal/magetasks"
)

// Default target - build the binary
var Default = Build

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// Build builds the waitfor binary
func Build() error {
	return magetasks.BuildAll()
}

// Clean removes build artifacts
func Clean() error {
	return magetasks.Clean()
}

// All builds and runs the test report
func All() error {
	return magetasks.RunAll()
}

// QA runs all quality assurance checks
func QA() error {
	magetasks.PrintH1Header("waitfor Quality Assurance")

	if err := magetasks.LintFormat(); err != nil {
		return fmt.Errorf("format check failed: %w", err)
	}
	if err := magetasks.LintVet(); err != nil {
		return fmt.Errorf("vet failed: %w", err)
	}
	if err := magetasks.LintStaticcheck(); err != nil && !magetasks.IsCommandNotFound(err) {
		return err
	}
	if err := magetasks.LintGolangci(); err != nil && !magetasks.IsCommandNotFound(err) {
		return err
	}
	if err := magetasks.Run("Gosec Security Scan", "gosec", "-quiet", "./..."); err != nil {
		if magetasks.IsCommandNotFound(err) {
			magetasks.PrintWarning("Gosec not found (install: go install github.com/securego/gosec/v2/cmd/gosec@latest)")
		} else {
			return fmt.Errorf("gosec failed: %w", err)
		}
	}
	if err := magetasks.Run("Go Build", "go", "build", "./..."); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	magetasks.PrintSuccess("QA complete!")
	return nil
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs all linters
func (Lint) All() error {
	return magetasks.LintAll()
}

// Format checks code formatting
func (Lint) Format() error {
	return magetasks.LintFormat()
}

// Vet runs go vet
func (Lint) Vet() error {
	return magetasks.LintVet()
}

// Staticcheck runs staticcheck
func (Lint) Staticcheck() error {
	return magetasks.LintStaticcheck()
}

// Golangci runs golangci-lint
func (Lint) Golangci() error {
	return magetasks.LintGolangci()
}

// Fix runs golangci-lint with auto-fixes
func (Lint) Fix() error {
	return magetasks.LintGolangciFix()
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return magetasks.TestAll()
}

// Report runs all tests with a per-package summary
func (Test) Report() error {
	return magetasks.TestReport()
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	return magetasks.TestCoverage()
}

// Race runs tests with race detector
func (Test) Race() error {
	return magetasks.TestRace()
}

// Quality namespace for quality check commands
type Quality mg.Namespace

// Check runs the quality validation suite
func (Quality) Check() error {
	return magetasks.QualityCheck()
}

// Report generates the quality report
func (Quality) Report() error {
	return magetasks.QualityReport()
}
