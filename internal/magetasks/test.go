package magetasks

// TestAll runs all tests.
func TestAll() error {
	PrintH2Header("Tests")
	if err := Run("go test", "go", "test", "./..."); err != nil {
		return err
	}
	PrintSuccess("All tests passed")
	return nil
}

// TestCoverage runs tests with coverage and prints the per-function report.
func TestCoverage() error {
	PrintH2Header("Test Coverage")
	if err := Run("go test -cover", "go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	_ = Run("coverage report", "go", "tool", "cover", "-func=coverage.out")
	PrintSuccess("Coverage report generated")
	return nil
}

// TestRace runs tests with race detector. The waiter engine races two
// goroutines, so this target is part of CI.
func TestRace() error {
	PrintH2Header("Race Detector")
	if err := Run("go test -race", "go", "test", "-race", "./..."); err != nil {
		return err
	}
	PrintSuccess("No race conditions detected")
	return nil
}
