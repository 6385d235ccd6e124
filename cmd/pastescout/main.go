package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/batch"
	"github.com/fwojciec/pastescout/erank"
	"github.com/fwojciec/pastescout/everbee"
	"github.com/fwojciec/pastescout/goquery"
	psslog "github.com/fwojciec/pastescout/slog"
	"github.com/fwojciec/pastescout/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when a command is given "-" as its file.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pastescout"),
		kong.Description("Extract structured records from copy-pasted marketplace pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pastescout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var opts []goquery.Option
	if cli.Today != "" {
		today, err := parseToday(cli.Today)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", pastescout.ErrorMessage(err))
			return err
		}
		opts = append(opts, goquery.WithClock(func() time.Time { return today }))
	}

	profile, err := loadProfile(cli.ProfilePath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Unset PASTESCOUT_PROFILE to use the built-in analytics tables")
		return fmt.Errorf("failed to load profile %q: %w", cli.ProfilePath, err)
	}

	deps.Format = cli.Format
	deps.Profile = profile
	deps.Listings = psslog.NewLoggingListingParser(goquery.NewListingParser(opts...), logger)
	deps.Analytics = psslog.NewLoggingAnalyticsParser(everbee.NewParser(everbee.WithProfile(profile)), logger)
	deps.Keywords = psslog.NewLoggingKeywordParser(erank.NewParser(), logger)

	deps.Runner = psslog.NewLoggingRunner(&batch.Runner{
		Listings:    deps.Listings,
		Analytics:   deps.Analytics,
		Keywords:    deps.Keywords,
		Concurrency: cli.Batch.Concurrency,
	}, logger)

	return kongCtx.Run(deps)
}

// parseToday parses a YYYY-MM-DD date.
func parseToday(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, pastescout.Errorf(pastescout.EINVALID, "invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// loadProfile reads the analytics profile at path. An empty path selects
// the built-in profile.
func loadProfile(path string) (*everbee.Profile, error) {
	if path == "" {
		return everbee.DefaultProfile(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return yaml.LoadProfile(f)
}
