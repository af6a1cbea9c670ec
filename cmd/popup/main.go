// Command popup prints the followed clubs' upcoming matches as styled cards. With -watch it
// stays open and re-renders on "r".
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"esports-schedule/internal/cards"
	"esports-schedule/internal/config"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/matcher"
	"esports-schedule/internal/metrics"
	"esports-schedule/internal/popup"
	"esports-schedule/internal/settings"
	"esports-schedule/internal/terminal"
)

const appVersion = "dev"

const watchHelp = "r: refresh  q: quit"

type options struct {
	game         string
	settingsPath string
	watch        bool
	width        int
}

type viewLoader interface {
	Load(ctx context.Context, gameFilter string) cards.View
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	opts, err := parseFlags(os.Args[1:], cfg, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "esports-schedule-popup",
		Version: appVersion,
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := newLoader(cfg, opts.settingsPath, logger)
	if err := run(ctx, opts, loader, os.Stdin, os.Stdout); err != nil {
		logging.Error(logger, "popup failed", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg config.Config, errOut io.Writer) (options, error) {
	opts := options{}
	fs := flag.NewFlagSet("popup", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.game, "game", cards.FilterAll, "only show matches whose game tag equals this exactly, e.g. VALORANT or LEAGUE_OF_LEGENDS (ALL disables the filter)")
	fs.StringVar(&opts.settingsPath, "settings", cfg.SettingsPath, "settings file (.json or .yaml)")
	fs.BoolVar(&opts.watch, "watch", false, "stay open and refresh on demand")
	fs.IntVar(&opts.width, "width", 64, "card width in cells")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func newLoader(cfg config.Config, settingsPath string, logger *slog.Logger) *popup.Loader {
	return popup.New(popup.Config{
		Settings: settings.NewService(settings.NewFileStore(settingsPath), logger),
		Matcher:  matcher.New(cfg.FuzzyThreshold),
		Location: cfg.Location(),
		Logger:   logger,
		Metrics:  metrics.NewRecorder(),
	})
}

type app struct {
	opts     options
	loader   viewLoader
	renderer *terminal.Renderer
	out      io.Writer
}

func run(ctx context.Context, opts options, loader viewLoader, in io.Reader, out io.Writer) error {
	a := &app{
		opts:     opts,
		loader:   loader,
		renderer: terminal.New(out, terminal.WithWidth(opts.width)),
		out:      out,
	}
	if !opts.watch {
		return a.print(loader.Load(ctx, opts.game))
	}
	return a.watch(ctx, in)
}

func (a *app) print(view cards.View) error {
	_, err := fmt.Fprintf(a.out, "%s\n\nsettings: %s (edit with the options command)\n", a.renderer.Render(view), a.opts.settingsPath)
	if err == nil && a.opts.watch {
		_, err = fmt.Fprintln(a.out, watchHelp)
	}
	return err
}

type cycleResult struct {
	id   int
	view cards.View
}

// watch runs one render cycle per refresh request. A new request cancels the cycle still in
// flight and only the latest cycle's view is printed.
func (a *app) watch(ctx context.Context, in io.Reader) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make(chan cycleResult)
	cancel := context.CancelFunc(func() {})
	defer func() { cancel() }()
	current := 0
	pending := false

	refresh := func() {
		cancel()
		var cycleCtx context.Context
		cycleCtx, cancel = context.WithCancel(ctx)
		current++
		pending = true
		go func(id int) {
			view := a.loader.Load(cycleCtx, a.opts.game)
			select {
			case results <- cycleResult{id: id, view: view}:
			case <-ctx.Done():
			}
		}(current)
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if !pending {
					return nil
				}
				lines = nil
				continue
			}
			switch strings.ToLower(line) {
			case "q", "quit":
				return nil
			case "r", "refresh", "":
				refresh()
			default:
				if _, err := fmt.Fprintln(a.out, watchHelp); err != nil {
					return err
				}
			}
		case res := <-results:
			if res.id != current {
				continue
			}
			pending = false
			if err := a.print(res.view); err != nil {
				return err
			}
			if lines == nil {
				return nil
			}
		}
	}
}
