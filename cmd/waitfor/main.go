// waitfor blocks a CI job until other jobs of the same workflow run have
// finished successfully, then republishes the JSON outputs they uploaded.
//
// Usage:
//
//	waitfor --jobs build,test --outputs-from build.json
//	INPUT_JOBS=$'build\ntest' waitfor --prefix
//
// Output modes (auto-detected):
//
//	workflow  GitHub Actions workflow commands (when GITHUB_ACTIONS=true)
//	terminal  styled log lines (default)
//	tui       live view (--tui on a terminal)
//
// Exit codes: 0 when every dependency succeeded, 1 when the wait failed,
// 2 for usage or configuration errors.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/dkoosis/waitfor/internal/actions"
	"github.com/dkoosis/waitfor/internal/artifact"
	"github.com/dkoosis/waitfor/internal/config"
	"github.com/dkoosis/waitfor/internal/github"
	"github.com/dkoosis/waitfor/internal/tui"
	"github.com/dkoosis/waitfor/internal/version"
	"github.com/dkoosis/waitfor/pkg/duration"
	"github.com/dkoosis/waitfor/pkg/waiter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// sink receives the engine's log lines and its result.
type sink interface {
	waiter.Logger
	waiter.Reporter
}

var boolKeys = map[string]bool{
	config.KeyIgnoreSkipped:    true,
	config.KeyPrefix:           true,
	config.KeySuffix:           true,
	config.KeyAllowTTLOverride: true,
}

var usage = map[string]string{
	config.KeyToken:            "GitHub token used to read jobs and artifacts",
	config.KeyJobs:             "jobs to wait for, separated by newlines or commas",
	config.KeyIgnoreSkipped:    "treat skipped jobs as successful",
	config.KeyPrefix:           "match jobs whose name starts with each entry",
	config.KeySuffix:           "match jobs whose name ends with each entry",
	config.KeyInterval:         "polling interval in milliseconds",
	config.KeyTTL:              "minutes to wait before giving up",
	config.KeyAllowTTLOverride: "allow a ttl above 15 minutes",
	config.KeyOutputsFrom:      "JSON files whose keys are merged into the outputs",
	config.KeyArtifactBackend:  "where output files are read from: github, s3, dir",
	config.KeyArtifactDir:      "directory for the dir artifact backend",
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("waitfor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	for _, key := range config.Keys {
		if boolKeys[key] {
			fs.Bool(key, false, usage[key])
			continue
		}
		fs.String(key, "", usage[key])
	}
	debugFlag := fs.Bool("debug", false, "show debug lines")
	themeFlag := fs.String("theme", "default", "Theme: default, mono")
	tuiFlag := fs.Bool("tui", false, "show a live view when stdout is a terminal")
	versionFlag := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "waitfor: unexpected arguments: %v\n", fs.Args())
		return 2
	}
	if *versionFlag {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	flags := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		if _, ok := usage[f.Name]; ok {
			flags[f.Name] = f.Value.String()
		}
	})
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "waitfor: %v\n", err)
		return 2
	}
	runCtx, err := github.ContextFromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "waitfor: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	debug := *debugFlag || os.Getenv("RUNNER_DEBUG") == "1"
	opts := runOptions{
		cfg:    cfg,
		runCtx: runCtx,
		debug:  debug,
		theme:  *themeFlag,
	}

	if *tuiFlag && os.Getenv("GITHUB_ACTIONS") != "true" && isTTYWriter(stdout) {
		return runTUI(ctx, cancel, opts, stdout, stderr)
	}
	out := selectSink(stdout, opts)
	return wait(ctx, opts, out, out, stderr)
}

type runOptions struct {
	cfg    *config.Config
	runCtx github.Context
	debug  bool
	theme  string
}

// selectSink picks workflow commands inside Actions and styled lines
// elsewhere.
func selectSink(stdout io.Writer, opts runOptions) sink {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return actions.NewWorkflow(stdout, os.Getenv("GITHUB_OUTPUT"))
	}
	theme := actions.ThemeByName(opts.theme)
	if os.Getenv("NO_COLOR") != "" {
		theme = actions.MonoTheme()
	}
	return actions.NewTerminal(stdout, theme, opts.debug)
}

// wait builds the engine and blocks until it finishes.
func wait(ctx context.Context, opts runOptions, log waiter.Logger, report waiter.Reporter, stderr io.Writer, engineOpts ...waiter.Option) int {
	client := github.NewClient(github.ClientConfig{
		Context: opts.runCtx,
		Token:   opts.cfg.Token,
		Logger:  log,
	})
	store, err := newStore(opts.cfg, opts.runCtx, client, log)
	if err != nil {
		fmt.Fprintf(stderr, "waitfor: %v\n", err)
		return 2
	}
	fetcher := artifact.JSONFetcher{Store: artifact.NewCachedStore(store, artifact.DefaultCacheConfig())}

	started := time.Now()
	engine := waiter.New(opts.cfg.Waiter(), client, fetcher, log, report, engineOpts...)
	if err := engine.Start(ctx); err != nil {
		return 1
	}

	if path := os.Getenv("GITHUB_STEP_SUMMARY"); path != "" {
		took := duration.Compact(started, time.Now())
		if err := actions.AppendStepSummary(path, actions.RenderStepSummary(engine.Summaries(), took)); err != nil {
			log.Warning(err.Error())
		}
	}
	return 0
}

// runTUI runs the engine on a goroutine behind the live view.
func runTUI(ctx context.Context, cancel context.CancelFunc, opts runOptions, stdout, stderr io.Writer) int {
	prog := tui.New(stdout, opts.cfg.Jobs, cancel, opts.debug)
	lg := prog.Logger()

	done := make(chan int, 1)
	go func() {
		code := wait(ctx, opts, lg, lg, stderr, waiter.WithOnEvent(prog.OnEvent))
		prog.Quit()
		done <- code
	}()

	if err := prog.Run(); err != nil {
		cancel()
		fmt.Fprintf(stderr, "waitfor: %v\n", err)
		<-done
		return 1
	}
	return <-done
}

func newStore(cfg *config.Config, runCtx github.Context, client *github.Client, log artifact.Logger) (artifact.Store, error) {
	switch cfg.ArtifactBackend {
	case "s3":
		a := cfg.Artifact
		return artifact.NewS3Store(artifact.S3Config{
			Endpoint:  a.Endpoint,
			Region:    a.Region,
			AccessKey: a.AccessKey,
			SecretKey: a.SecretKey,
			Bucket:    a.Bucket,
			Prefix:    a.Prefix,
			UseSSL:    a.UseSSL,
		}, fmt.Sprint(runCtx.RunID))
	case "dir":
		return artifact.NewDirStore(cfg.ArtifactDir), nil
	case "github":
		return artifact.NewGitHubStore(client, log), nil
	default:
		return nil, errors.New("unknown artifact backend " + cfg.ArtifactBackend)
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
