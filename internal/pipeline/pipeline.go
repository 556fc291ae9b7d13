// Package pipeline orchestrates per-repository metric computation:
// resolve, fetch, timed calculator calls, aggregation, report assembly.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dnishkina/trustscore/internal/analysis"
	apperrors "github.com/dnishkina/trustscore/internal/errors"
	"github.com/dnishkina/trustscore/internal/monitoring"
	"github.com/dnishkina/trustscore/internal/output"
)

// RepoSource is the upstream data dependency the pipeline consumes.
// *adapters.GitHubClient satisfies it.
type RepoSource interface {
	FetchContributors(ctx context.Context, owner, repo string) ([]analysis.Contributor, error)
	FetchRepoFacts(ctx context.Context, owner, repo string) (analysis.RepoFacts, error)
	FetchLicense(ctx context.Context, owner, repo string) (analysis.License, error)
}

// Normalizer maps package-registry links to their canonical source URL
// before resolution. *adapters.RegistryClient satisfies it.
type Normalizer interface {
	NormalizeLink(ctx context.Context, raw string) (string, error)
}

// Runner scores repositories one at a time, strictly sequentially, and
// appends each completed row before starting the next. Repositories
// share no mutable state, so this could later fan out behind the same
// sink contract.
type Runner struct {
	source    RepoSource
	norm      Normalizer
	log       *monitoring.Logger
	metrics   *monitoring.Metrics
	threshold float64
	now       func() time.Time
}

// NewRunner creates a pipeline runner. norm may be nil when no link
// normalization is wanted.
func NewRunner(source RepoSource, norm Normalizer, logger *monitoring.Logger, metrics *monitoring.Metrics) *Runner {
	return &Runner{
		source:    source,
		norm:      norm,
		log:       logger,
		metrics:   metrics,
		threshold: analysis.DefaultBusFactorThreshold,
		now:       time.Now,
	}
}

// Run scores every URL in order, writing one row per URL to the sink.
// Row-level failures degrade to error rows and processing continues;
// only a sink failure aborts the batch.
func (r *Runner) Run(ctx context.Context, urls []string, sink *output.Sink) error {
	runID := uuid.NewString()

	for _, rawURL := range urls {
		start := time.Now()

		report, err := r.ScoreURL(ctx, rawURL)
		if err != nil {
			if r.metrics != nil {
				r.metrics.IncrementRowErrors()
			}
			if r.log != nil {
				r.log.RowErrorLogger(runID, rawURL, err)
			}
			if werr := sink.WriteErrorRow(err.Error()); werr != nil {
				return werr
			}
			continue
		}

		if werr := sink.WriteReport(report); werr != nil {
			return werr
		}
		if r.metrics != nil {
			r.metrics.IncrementReportsWritten()
		}
		if r.log != nil {
			r.log.ReportLogger(runID, rawURL, report.NetScore, time.Since(start))
		}
	}

	return nil
}

// ScoreURL runs the full metric pipeline for one repository URL and
// assembles its report. Calculators and timers let failures propagate;
// this is the sole boundary that turns them into a row-level error.
func (r *Runner) ScoreURL(ctx context.Context, rawURL string) (output.Report, error) {
	link := rawURL
	if r.norm != nil {
		normalized, err := r.norm.NormalizeLink(ctx, rawURL)
		if err != nil {
			return output.Report{}, apperrors.WrapError(err, "failed to normalize %q", rawURL)
		}
		link = normalized
	}

	ref, ok := ParseRepoURL(link)
	if !ok {
		return output.Report{}, apperrors.NewValidationError(fmt.Sprintf("Invalid URL: %s", rawURL))
	}

	contributors, err := r.source.FetchContributors(ctx, ref.Owner, ref.Name)
	if err != nil {
		return output.Report{}, err
	}
	facts, err := r.source.FetchRepoFacts(ctx, ref.Owner, ref.Name)
	if err != nil {
		return output.Report{}, err
	}

	busFactor, err := analysis.Timed(func() (int, error) {
		return analysis.BusFactor(contributors, r.threshold), nil
	})
	if err != nil {
		return output.Report{}, err
	}

	rampUp, err := analysis.Timed(func() (float64, error) {
		return analysis.RampUp(facts), nil
	})
	if err != nil {
		return output.Report{}, err
	}

	correctness, err := analysis.Timed(func() (float64, error) {
		return analysis.Correctness(facts), nil
	})
	if err != nil {
		return output.Report{}, err
	}

	responsive, err := analysis.Timed(func() (float64, error) {
		return analysis.ResponsiveMaintainer(facts, r.now()), nil
	})
	if err != nil {
		return output.Report{}, err
	}

	report := output.Report{
		URL:                         rawURL,
		RampUp:                      rampUp.Output,
		RampUpLatency:               rampUp.Seconds,
		Correctness:                 correctness.Output,
		CorrectnessLatency:          correctness.Seconds,
		BusFactor:                   analysis.NormalizeBusFactor(busFactor.Output),
		BusFactorLatency:            busFactor.Seconds,
		ResponsiveMaintainer:        responsive.Output,
		ResponsiveMaintainerLatency: responsive.Seconds,
	}

	// License is the one metric with its own fetch; a transport failure
	// here nulls the metric instead of discarding the row.
	license, err := analysis.Timed(func() (float64, error) {
		l, lerr := r.source.FetchLicense(ctx, ref.Owner, ref.Name)
		if lerr != nil {
			return 0, lerr
		}
		return analysis.LicenseScore(l), nil
	})
	if err != nil {
		if r.log != nil {
			r.log.Warn("License metric degraded", "repo", ref.String(), "error", err.Error())
		}
	} else {
		report.License = &license.Output
		report.LicenseLatency = license.Seconds
	}

	netScore, err := analysis.Timed(func() (float64, error) {
		return analysis.NetScore(
			report.BusFactor,
			report.RampUp,
			report.Correctness,
			report.ResponsiveMaintainer,
		), nil
	})
	if err != nil {
		return output.Report{}, err
	}
	report.NetScore = netScore.Output
	report.NetScoreLatency = netScore.Seconds

	return report, nil
}
