package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rooftopcms/rooftop"
	rhttp "github.com/rooftopcms/rooftop/http"
	rslog "github.com/rooftopcms/rooftop/slog"
	"github.com/rooftopcms/rooftop/sqlite"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Input for commands reading from stdin.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ContentService rooftop.ContentService
	MenuService    rooftop.MenuService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("rooftop"),
		kong.Description("Serve CMS content with internal links as structured placeholders"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rooftop --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.LogLevel)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ROOFTOP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	if m.ContentService == nil {
		m.ContentService = sqlite.NewContentService(m.DB)
	}
	if m.MenuService == nil {
		m.MenuService = sqlite.NewMenuService(m.DB)
	}
	deps.DB = m.DB
	deps.Contents = m.ContentService
	deps.Menus = m.MenuService
	deps.Lookup = sqlite.NewContentLookup(m.DB)

	if strings.HasPrefix(kongCtx.Command(), "rewrite") {
		fetcher := rslog.NewLoggingFetcher(rhttp.NewRetryFetcher(rhttp.NewFetcher(), nil), deps.Logger)
		defer fetcher.Close()
		deps.Fetcher = fetcher
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultDBPath() string {
	if path := os.Getenv("ROOFTOP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "rooftop.db"
	}
	dir := filepath.Join(home, ".rooftop")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "rooftop.db")
}
