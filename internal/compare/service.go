// Package compare orchestrates the two yearly fetch-and-parse
// pipelines and merges their datasets into a comparison.
package compare

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dquispe/comparador-presupuestal/internal/budget"
	"github.com/dquispe/comparador-presupuestal/internal/metrics"
)

// Fetcher retrieves a report page as decoded text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ParseFunc extracts the line-item dataset from a report page.
type ParseFunc func(page string) (*budget.Dataset, error)

// Service runs comparisons with injected collaborators.
type Service struct {
	fetcher Fetcher
	parse   ParseFunc
	logger  *zap.Logger
}

// NewService constructs a Service.
func NewService(fetcher Fetcher, parse ParseFunc, logger *zap.Logger) *Service {
	metrics.Init()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, parse: parse, logger: logger}
}

// Compare resolves the two fiscal years from rawURL, runs both yearly
// pipelines concurrently, and diffs the resulting datasets. The first
// pipeline failure wins and is reported with its year; the group
// context cancels the sibling fetch still in flight.
func (s *Service) Compare(ctx context.Context, rawURL string) (budget.ComparisonResult, error) {
	yearActual, yearAnterior, priorURL, err := budget.ResolveYears(rawURL)
	if err != nil {
		return budget.ComparisonResult{}, err
	}

	var current, prior *budget.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds, err := s.yearDataset(gctx, rawURL, "actual")
		if err != nil {
			return yearError(yearActual, err)
		}
		current = ds
		return nil
	})
	g.Go(func() error {
		ds, err := s.yearDataset(gctx, priorURL, "anterior")
		if err != nil {
			return yearError(yearAnterior, err)
		}
		prior = ds
		return nil
	})
	if err := g.Wait(); err != nil {
		return budget.ComparisonResult{}, err
	}

	result := budget.Diff(current, prior, yearActual, yearAnterior)
	s.logger.Info("comparison built",
		zap.Int("year_actual", yearActual),
		zap.Int("year_anterior", yearAnterior),
		zap.Int("rows", len(result.Data)),
	)
	return result, nil
}

func (s *Service) yearDataset(ctx context.Context, url, yearKind string) (*budget.Dataset, error) {
	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	metrics.ObserveFetch(yearKind, time.Since(start))
	return s.parse(page)
}

func yearError(year int, err error) error {
	return fmt.Errorf("Error en datos de %d: %s", year, err.Error())
}
