package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kvdrop"
	"github.com/fwojciec/kvdrop/etree"
	"github.com/fwojciec/kvdrop/excelize"
	"github.com/fwojciec/kvdrop/extract"
	"github.com/fwojciec/kvdrop/fs"
	"github.com/fwojciec/kvdrop/goquery"
	"github.com/fwojciec/kvdrop/jsonschema"
	kvslog "github.com/fwojciec/kvdrop/slog"
	"github.com/fwojciec/kvdrop/sqlite"
	"github.com/fwojciec/kvdrop/workspace"
	"github.com/fwojciec/kvdrop/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for the sqlite backend. Set before calling Run().
	DBPath string

	// State directory for the fs backend. Set before calling Run().
	Dir string

	// Input for "-" sources.
	Stdin io.Reader

	// SQLite database used by the sqlite backend.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Dir:    defaultDir(),
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
		kong.Name("kvdrop"),
		kong.Description("Collect key-value pairs from dropped JSON, markup and text."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'kvdrop --help' to see available commands")
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

	logger := newLogger(cli.Verbose, stderr)

	var entries kvdrop.EntryService
	switch cli.Backend {
	case backendFS:
		svc := fs.NewEntryService(m.Dir)
		entries = svc
		deps.Watcher = svc
	default:
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set KVDROP_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		entries = sqlite.NewEntryService(m.DB)
	}

	ws, err := newWorkspace(entries, logger)
	if err != nil {
		return err
	}

	// A corrupt state must not block the command that resets it.
	if kongCtx.Command() != "clear" {
		if err := ws.Load(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Run 'kvdrop clear --force' to reset stored data")
			return fmt.Errorf("failed to load stored data: %w", err)
		}
	}
	deps.Workspace = ws

	return kongCtx.Run(deps)
}

// newWorkspace wires the parsers, serializers and validator around entries.
func newWorkspace(entries kvdrop.EntryService, logger *slog.Logger) (*workspace.Workspace, error) {
	validator, err := jsonschema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}

	extractor := extract.NewCoordinator(goquery.NewMarkupParser(), etree.NewMarkupParser())

	var serializers []kvdrop.Serializer
	for _, s := range []kvdrop.Serializer{
		&kvdrop.JSONSerializer{},
		&kvdrop.CSVSerializer{},
		yaml.NewSerializer(),
		excelize.NewSerializer(),
	} {
		serializers = append(serializers, kvslog.NewLoggingSerializer(s, logger))
	}

	ws := workspace.New(
		kvslog.NewLoggingExtractor(extractor, logger),
		kvslog.NewLoggingEntryService(entries, logger),
		serializers...,
	)
	ws.Validator = validator
	ws.Logger = logger
	return ws, nil
}

func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("KVDROP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "kvdrop.db"
	}
	dir := filepath.Join(home, ".kvdrop")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "kvdrop.db")
}

func defaultDir() string {
	if dir := os.Getenv("KVDROP_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kvdrop"
	}
	return filepath.Join(home, ".kvdrop", "state")
}
