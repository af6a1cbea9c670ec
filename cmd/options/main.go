// Command options edits the followed clubs and the backend URL stored in the settings file.
//
//	options [-settings path] list
//	options [-settings path] add -name NAME [-primary HEX] [-secondary HEX] [-aliases "a, b"]
//	options [-settings path] edit INDEX FIELD VALUE
//	options [-settings path] rm INDEX
//	options [-settings path] backend [URL]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"esports-schedule/internal/config"
	"esports-schedule/internal/domain/clubs"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/settings"
)

const appVersion = "dev"

var errUsage = errors.New("usage: options [-settings path] list | add | edit INDEX FIELD VALUE | rm INDEX | backend [URL]")

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "esports-schedule-options",
		Version: appVersion,
		Output:  os.Stderr,
	})

	if err := run(context.Background(), os.Args[1:], cfg, logger, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, cfg config.Config, logger *slog.Logger, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("options", flag.ContinueOnError)
	fs.SetOutput(errOut)
	path := fs.String("settings", cfg.SettingsPath, "settings file (.json or .yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}

	svc := settings.NewService(settings.NewFileStore(*path), logger)
	cmd, params := rest[0], rest[1:]
	switch cmd {
	case "list":
		return list(ctx, svc, out)
	case "add":
		return add(ctx, svc, params, out, errOut)
	case "edit":
		return edit(ctx, svc, params, out)
	case "rm":
		return remove(ctx, svc, params, out)
	case "backend":
		return backend(ctx, svc, params, out)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func list(ctx context.Context, svc *settings.Service, out io.Writer) error {
	st, err := svc.EnsureClubs(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "backend: %s\n", st.BackendURL)
	if len(st.Clubs) == 0 {
		fmt.Fprintln(out, "no clubs")
		return nil
	}
	for i, c := range st.Clubs {
		fmt.Fprintf(out, "%d. %s\n", i, describe(c))
	}
	return nil
}

func add(ctx context.Context, svc *settings.Service, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var in settings.ClubInput
	fs.StringVar(&in.Name, "name", "", "club name (required)")
	fs.StringVar(&in.Primary, "primary", "", "primary color, default "+clubs.DefaultPrimary)
	fs.StringVar(&in.Secondary, "secondary", "", "secondary color, default "+clubs.DefaultSecondary)
	fs.StringVar(&in.Aliases, "aliases", "", "comma separated aliases")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if in.Name == "" && fs.NArg() > 0 {
		in.Name = strings.Join(fs.Args(), " ")
	}

	club, err := svc.AddClub(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added %s\n", describe(club))
	return nil
}

func edit(ctx context.Context, svc *settings.Service, args []string, out io.Writer) error {
	if len(args) != 3 {
		return fmt.Errorf("edit INDEX FIELD VALUE: %w", errUsage)
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	club, err := svc.UpdateClub(ctx, index, args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "updated %d. %s\n", index, describe(club))
	return nil
}

func remove(ctx context.Context, svc *settings.Service, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("rm INDEX: %w", errUsage)
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	club, err := svc.DeleteClub(ctx, index)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "removed %s\n", club.Name)
	return nil
}

func backend(ctx context.Context, svc *settings.Service, args []string, out io.Writer) error {
	switch len(args) {
	case 0:
		st, err := svc.Get(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, st.BackendURL)
		return nil
	case 1:
		url, err := svc.SetBackendURL(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "backend set to %s\n", url)
		return nil
	default:
		return fmt.Errorf("backend [URL]: %w", errUsage)
	}
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", raw)
	}
	return index, nil
}

func describe(c clubs.Club) string {
	line := fmt.Sprintf("%s (%s / %s)", c.Name, c.Primary, c.Secondary)
	if len(c.Aliases) > 0 {
		line += " aliases: " + strings.Join(c.Aliases, ", ")
	}
	return line
}
