package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/kalafut/textdiff"
	"github.com/kalafut/textdiff/internal/config"
	"github.com/kalafut/textdiff/internal/logging"
	"github.com/kalafut/textdiff/internal/server"
	"github.com/kalafut/textdiff/internal/termview"
)

// Exit statuses follow diff(1).
const (
	exitSame  = 0
	exitDiff  = 1
	exitError = 2
)

var CLI struct {
	Config   string `type:"existingfile" help:"YAML configuration file."`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)."`

	Compare struct {
		LeftFile         *os.File `arg:"" help:"Left (original) file, - for stdin"`
		RightFile        *os.File `arg:"" help:"Right (modified) file"`
		IgnoreWhitespace bool     `short:"w" help:"Treat lines differing only in whitespace as equal."`
		Structured       bool     `short:"j" help:"Parse both inputs as JSON and compare canonical forms."`
		View             string   `help:"side-by-side or inline."`
		Format           string   `default:"term" enum:"term,plain,html,json" help:"Output format: term, plain, html, json."`
		Stat             bool     `help:"Print only change counts."`
		Context          int      `default:"-1" help:"Unchanged lines kept around each change (-1 uses the config)."`
		Width            int      `help:"Terminal width, 0 to detect."`
		Color            string   `help:"auto, always or never."`
	} `cmd:"" help:"Compare two files."`

	Serve struct {
		Addr string `help:"Listen address."`
	} `cmd:"" help:"Serve comparisons over HTTP."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("textdiff"),
		kong.Description("Line and word level text comparison."),
		kong.Exit(func(code int) {
			if code != 0 {
				code = exitError
			}
			os.Exit(code)
		}),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fatal(err)
	}
	if CLI.LogLevel != "" {
		cfg.Logging.Level = CLI.LogLevel
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fatal(err)
	}

	switch ctx.Command() {
	case "compare <left-file> <right-file>":
		applyCompareFlags(&cfg.Compare)
		if err := cfg.Validate(); err != nil {
			fatal(err)
		}
		left, err := io.ReadAll(CLI.Compare.LeftFile)
		if err != nil {
			fatal(err)
		}
		right, err := io.ReadAll(CLI.Compare.RightFile)
		if err != nil {
			fatal(err)
		}

		code, err := compare(os.Stdout, string(left), string(right), cfg.Compare, output{
			format: CLI.Compare.Format,
			stat:   CLI.Compare.Stat,
			width:  terminalWidth(cfg.Compare.Width),
			color:  useColor(cfg.Compare.Color),
		}, logger)
		logger.Sync() //nolint:errcheck
		if err != nil {
			fatal(err)
		}
		os.Exit(code)
	case "serve":
		if CLI.Serve.Addr != "" {
			cfg.Server.Addr = CLI.Serve.Addr
		}
		err := serve(cfg, logger)
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
		logger.Sync() //nolint:errcheck
		if err != nil {
			os.Exit(exitError)
		}
	default:
		panic(ctx.Command())
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "textdiff: %s\n", err)
	os.Exit(exitError)
}

// applyCompareFlags lays explicitly set flags over the configured defaults.
func applyCompareFlags(c *config.CompareConfig) {
	f := CLI.Compare
	if f.View != "" {
		c.View = f.View
	}
	if f.IgnoreWhitespace {
		c.IgnoreWhitespace = true
	}
	if f.Structured {
		c.Structured = true
	}
	if f.Context >= 0 {
		c.Context = f.Context
	}
	if f.Width > 0 {
		c.Width = f.Width
	}
	if f.Color != "" {
		c.Color = f.Color
	}
}

type output struct {
	format string // term, plain, html, json
	stat   bool
	width  int
	color  bool
}

// compare runs one comparison and writes it to w, returning the exit status.
func compare(w io.Writer, left, right string, c config.CompareConfig, out output, logger *zap.Logger) (int, error) {
	opts := append(c.FuncOptions(), textdiff.WithLogger(logger))
	res, err := textdiff.Run(left, right, c.Options(), opts...)
	if err != nil {
		return exitError, err
	}

	code := exitDiff
	if res.Identical() {
		code = exitSame
	}

	if out.stat {
		s := res.Stats
		_, err = fmt.Fprintf(w, "%d added, %d removed, %d changed\n", s.Added, s.Removed, s.Changed)
		return code, err
	}

	switch out.format {
	case "plain":
		if res.PlainText != "" {
			_, err = fmt.Fprintln(w, res.PlainText)
		}
	case "html":
		_, err = fmt.Fprintln(w, res.HTML)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(res)
	default:
		err = termview.Render(w, res.View, termview.Options{Width: out.width, Color: out.color})
	}
	if err != nil {
		return exitError, err
	}
	return code, nil
}

func terminalWidth(configured int) int {
	if configured > 0 {
		return configured
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return termview.DefaultWidth
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func serve(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.CompareTimeout+5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
