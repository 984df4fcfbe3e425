package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"moviedash/internal/config"
	"moviedash/internal/dashboard"
	"moviedash/internal/dataprocessing"
	"moviedash/internal/infrastructure"
	"moviedash/internal/services"
	handlers "moviedash/internal/transport/http"
	"moviedash/pkg/contracts"
	"moviedash/pkg/contracts/domain"
)

// selectionFlag collects repeated -genre or -rating values into a query so
// they follow the same rules as the HTTP API.
type selectionFlag struct {
	key   string
	query url.Values
}

func (f selectionFlag) String() string {
	return strings.Join(f.query[f.key], ",")
}

func (f selectionFlag) Set(v string) error {
	f.query[f.key] = append(f.query[f.key], v)
	return nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run renders or exports one selection and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("movie-report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	query := url.Values{}
	file := fs.String("file", config.DefaultDataFile, "movie file (';' delimited Latin-1 text or .xlsx)")
	format := fs.String("format", "json", "output format: json, csv or xlsx")
	out := fs.String("out", "", "output file (defaults to stdout)")
	level := fs.String("log-level", "warn", "log level: debug, info, warn or error")
	version := fs.Bool("version", false, "print version information and exit")
	fs.Var(selectionFlag{key: handlers.ParamGenre, query: query}, "genre", "genre to include; repeat or comma separate, empty selects none")
	fs.Var(selectionFlag{key: handlers.ParamRating, query: query}, "rating", "rating to include; repeat or comma separate, empty selects none")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	logger := infrastructure.NewLogger(config.LoggingConfig{Level: *level}, stderr)

	base, err := dataprocessing.BuildBaseTable(*file, logger)
	if err != nil {
		logger.Error("Failed to load movie data", slog.String("file", *file), slog.String("error", err.Error()))
		return 1
	}

	svc, err := services.NewDashboardService(base, dashboard.DefaultOptions(), logger)
	if err != nil {
		logger.Error("Failed to create dashboard service", slog.String("error", err.Error()))
		return 1
	}

	w := stdout
	var f *os.File
	if *out != "" {
		f, err = os.Create(*out)
		if err != nil {
			logger.Error("Failed to create output file", slog.String("path", *out), slog.String("error", err.Error()))
			return 1
		}
		w = f
	}

	sel := handlers.SelectionFromQuery(query)
	err = write(ctx, svc, w, strings.ToLower(*format), sel, logger)
	if f != nil {
		err = errors.Join(err, f.Close())
	}
	if err != nil {
		logger.Error("Report failed", slog.String("format", *format), slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func write(ctx context.Context, svc *services.DashboardService, w io.Writer, format string, sel domain.Selection, logger *slog.Logger) error {
	if format == "json" {
		result, err := svc.Render(ctx, sel)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	rows, err := svc.Export(ctx, w, format, sel)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "Export written", slog.String("format", format), slog.Int("rows", rows))
	return nil
}
