package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/singleflight"

	"moviedash/internal/dashboard"
	"moviedash/internal/dataprocessing"
	"moviedash/internal/exporter"
	"moviedash/internal/infrastructure"
	"moviedash/pkg/contracts/domain"
)

// DashboardService renders the dashboard for a selection. The base table is
// set once at construction and only read afterwards.
type DashboardService struct {
	base    *domain.BaseTable
	options dashboard.Options
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
	group   singleflight.Group
}

// DashboardOption configures optional telemetry on the service.
type DashboardOption func(*DashboardService)

// WithTracer records a span per render pass and export.
func WithTracer(tracer trace.Tracer) DashboardOption {
	return func(s *DashboardService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics records render and export metrics.
func WithMetrics(metrics *infrastructure.BusinessMetrics) DashboardOption {
	return func(s *DashboardService) {
		s.metrics = metrics
	}
}

// NewDashboardService creates a dashboard service over an already built base table
func NewDashboardService(base *domain.BaseTable, options dashboard.Options, logger *slog.Logger, opts ...DashboardOption) (*DashboardService, error) {
	if base == nil {
		return nil, ErrNoBaseTable
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &DashboardService{
		base:    base,
		options: options,
		logger:  logger.With(slog.String("service", "dashboard")),
		tracer:  noop.NewTracerProvider().Tracer("dashboard"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("DashboardService initialized",
		slog.Int("rows", base.Len()),
		slog.Int("genres", len(base.Genres)),
		slog.Int("ratings", len(base.Ratings)))

	return s, nil
}

// Render filters the base table and builds all seven views. Identical
// selections requested concurrently share one render pass.
func (s *DashboardService) Render(ctx context.Context, sel domain.Selection) (domain.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dashboard{}, err
	}

	v, err, shared := s.group.Do(SelectionKey(sel), func() (interface{}, error) {
		return s.render(ctx, sel), nil
	})
	if err != nil {
		return domain.Dashboard{}, err
	}

	if shared {
		s.logger.DebugContext(ctx, "Render pass shared", slog.String("key", SelectionKey(sel)))
	}
	return v.(domain.Dashboard), nil
}

func (s *DashboardService) render(ctx context.Context, sel domain.Selection) domain.Dashboard {
	ctx, span := s.tracer.Start(ctx, "dashboard.render",
		trace.WithAttributes(
			attribute.Int("selection.genres", selectionSize(sel.Genres)),
			attribute.Int("selection.ratings", selectionSize(sel.Ratings)),
		))
	defer span.End()

	start := time.Now()
	result := dashboard.Render(s.base, sel, s.options)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("dashboard.rows", result.RowCount))
	infrastructure.RecordRenderMetrics(ctx, s.metrics, "dashboard", result.RowCount, elapsed)

	s.logger.DebugContext(ctx, "Dashboard rendered",
		slog.Int("rows", result.RowCount),
		slog.Duration("duration", elapsed))

	return result
}

// Filtered returns the rows matching the selection.
func (s *DashboardService) Filtered(sel domain.Selection) []domain.MovieRecord {
	return dataprocessing.Filter(s.base.Records, sel)
}

// Options returns the values offered by the genre and rating controls.
func (s *DashboardService) Options() domain.FilterOptions {
	return domain.FilterOptions{Genres: s.base.Genres, Ratings: s.base.Ratings}
}

// Report returns the counters collected while the base table was built.
func (s *DashboardService) Report() domain.LoadReport {
	return s.base.Report
}

// RowCount is the size of the base table.
func (s *DashboardService) RowCount() int {
	return s.base.Len()
}

// Export writes the filtered rows in the requested format and returns how many
// rows were written.
func (s *DashboardService) Export(ctx context.Context, w io.Writer, format string, sel domain.Selection) (int, error) {
	f, err := exporter.ParseFormat(format)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	ctx, span := s.tracer.Start(ctx, "dashboard.export",
		trace.WithAttributes(attribute.String("export.format", string(f))))
	defer span.End()

	rows := s.Filtered(sel)
	if err := exporter.Write(w, f, rows); err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Export failed",
			slog.String("format", string(f)),
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("export %s: %w", f, err)
	}

	infrastructure.RecordExport(ctx, s.metrics, string(f), len(rows))
	s.logger.InfoContext(ctx, "Export written",
		slog.String("format", string(f)),
		slog.Int("rows", len(rows)))

	return len(rows), nil
}

// IsUnsupportedFormat reports whether err came from an unknown export format.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// SelectionKey identifies a selection for request collapsing. A nil slice
// (all values) and an empty slice (no values) produce different keys.
func SelectionKey(sel domain.Selection) string {
	return "g=" + setKey(sel.Genres) + "|r=" + setKey(sel.Ratings)
}

func setKey(values []string) string {
	if values == nil {
		return "*"
	}
	return "[" + strings.Join(values, "\x1f") + "]"
}

func selectionSize(values []string) int {
	if values == nil {
		return -1
	}
	return len(values)
}
