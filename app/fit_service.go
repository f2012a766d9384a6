package app

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"distfit/domain/core"
	"distfit/domain/fit"
	"distfit/internal"
	"distfit/ports"
)

// FitService runs the full pipeline: select families, estimate, evaluate,
// rank and assemble.
type FitService struct {
	registry  ports.RegistryPort
	estimator *Estimator
	evaluator *Evaluator
	logger    *internal.Logger
}

// NewFitService creates a fit service over the given catalog
func NewFitService(registry ports.RegistryPort, logger *internal.Logger) *FitService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FitService{
		registry:  registry,
		estimator: NewEstimator(logger),
		evaluator: NewEvaluator(),
		logger:    logger.Named("FitService"),
	}
}

// familyOutcome is the result of estimating and evaluating one family
type familyOutcome struct {
	model fit.FittedModel
	gof   fit.GoodnessOfFit
	diags []fit.Diagnostic
	ok    bool
}

// Fit resolves raw options and runs the pipeline. Option errors are returned
// before any fitting starts.
func (s *FitService) Fit(ctx context.Context, values []float64, raw fit.RawOptions) (*fit.RankedResult, error) {
	opts, err := fit.ResolveOptions(raw)
	if err != nil {
		return nil, err
	}
	return s.FitWithOptions(ctx, values, opts)
}

// FitWithOptions runs the pipeline with already-resolved options.
//
// A family whose estimation fails is dropped and recorded as a failure
// diagnostic. The call fails only for invalid options, an empty or
// non-finite dataset, or when no family could be fitted.
func (s *FitService) FitWithOptions(ctx context.Context, values []float64, opts fit.Options) (*fit.RankedResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ds, err := fit.NewDataset(values)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	runID := core.NewRunID()

	families := SelectFamilies(s.registry, ds)
	if skipped := len(s.registry.List()) - len(families); skipped > 0 {
		s.logger.Debug("run %s: data has non-positive values, skipping %d positive-only families", runID, skipped)
	}

	ecdf := EmpiricalCDF(ds)
	outcomes := make([]familyOutcome, len(families))

	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, family := range families {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes[i] = s.fitFamily(ds, ecdf, family)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, family := range families {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = s.fitFamily(ds, ecdf, family)
		}
	}

	var (
		models []fit.FittedModel
		fits   []fit.GoodnessOfFit
		diags  []fit.Diagnostic
	)
	for _, o := range outcomes {
		diags = append(diags, o.diags...)
		if !o.ok {
			continue
		}
		models = append(models, o.model)
		fits = append(fits, o.gof)
	}

	if len(models) == 0 {
		s.logger.Error("run %s: no family could be fitted to %d observations", runID, ds.Len())
		return nil, core.NewAllFamiliesFailedError(len(families))
	}

	order, err := Rank(fits, opts.SortMetric)
	if err != nil {
		return nil, err
	}

	result := Assemble(runID, models, fits, order, opts, diags)
	result.DatasetHash = core.ComputeDatasetHash(ds.Values())
	best, _ := result.Best()
	s.logger.Info("run %s: fitted %d/%d families to %d observations in %v, best by %s: %s",
		runID, len(models), len(families), ds.Len(), time.Since(start), opts.SortMetric, best.Model.Name())

	return result, nil
}

func (s *FitService) fitFamily(ds *fit.Dataset, ecdf ECDF, family fit.Family) familyOutcome {
	name := family.Spec().Name

	model, diags, err := s.estimator.Estimate(ds, family)
	if err != nil {
		s.logger.Warn("%s dropped: %v", name, err)
		return familyOutcome{diags: []fit.Diagnostic{{
			Family:   name,
			Severity: fit.SeverityFailure,
			Message:  err.Error(),
		}}}
	}

	gof, err := s.evaluator.EvaluateECDF(ds, ecdf, model)
	if err != nil {
		s.logger.Debug("%s: %v", name, err)
		diags = append(diags, fit.Diagnostic{
			Family:   name,
			Severity: fit.SeverityWarning,
			Message:  err.Error(),
		})
	}

	return familyOutcome{model: model, gof: gof, diags: diags, ok: true}
}

// Registry exposes the catalog the service fits from
func (s *FitService) Registry() ports.RegistryPort {
	return s.registry
}
