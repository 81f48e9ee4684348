package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hilyafadhilah/tubes-basdat/internal/reference"
	"go.uber.org/zap"
)

// Synthesizer runs the generation stages in dependency order over a single
// value provider. It is not safe for concurrent use.
type Synthesizer struct {
	params   Params
	provider ValueProvider
	logger   *zap.Logger
	graph    *DependencyGraph
	bundle   *reference.Bundle
}

func NewSynthesizer(params Params, provider ValueProvider, logger *zap.Logger) (*Synthesizer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid synthesis parameters: %w", err)
	}
	if provider == nil {
		provider = NewDataGenerator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Synthesizer{
		params:   params,
		provider: provider,
		logger:   logger,
		graph:    NewDependencyGraph(),
	}
	for _, stage := range s.stages() {
		s.graph.AddStage(stage)
	}
	if _, err := s.graph.BuildOrder(); err != nil {
		return nil, fmt.Errorf("failed to build stage order: %w", err)
	}
	return s, nil
}

// Order returns the linear stage schedule.
func (s *Synthesizer) Order() []string {
	return s.graph.GetOrder()
}

// Run generates a complete dataset from the reference bundle. Any stage
// failure aborts the run; the partial dataset is discarded.
func (s *Synthesizer) Run(ctx context.Context, bundle *reference.Bundle) (*Dataset, error) {
	if bundle == nil {
		return nil, fmt.Errorf("reference bundle is required")
	}
	s.bundle = bundle
	defer func() { s.bundle = nil }()

	order := s.graph.GetOrder()
	s.logger.Info("synthesis started", zap.String("order", strings.Join(order, " → ")))

	ds := &Dataset{}
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := s.graph.Stage(name).Run(ctx, ds); err != nil {
			return nil, fmt.Errorf("stage %s failed: %w", name, err)
		}
		s.logger.Info("stage completed",
			zap.String("stage", name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Any("sizes", ds.sizes(name)))
	}

	if err := ds.Check(s.params); err != nil {
		return nil, err
	}
	return ds, nil
}

func (ds *Dataset) sizes(stage string) map[string]int {
	switch stage {
	case StageRegions:
		return map[string]int{"provinces": len(ds.Provinces), "cities": len(ds.Cities)}
	case StageReferences:
		return map[string]int{"conditions": len(ds.Conditions), "jobs": len(ds.Jobs), "vaccines": len(ds.Vaccines)}
	case StageCitizens:
		return map[string]int{"citizens": len(ds.Citizens), "citizen_conditions": len(ds.CitizenConditions)}
	case StageFacilities:
		return map[string]int{
			"facilities":   len(ds.Facilities),
			"health_posts": len(ds.HealthPosts),
			"hospitals":    len(ds.Hospitals),
			"clinics":      len(ds.Clinics),
			"phones":       len(ds.FacilityPhones),
		}
	case StageRestrictions:
		return map[string]int{"restrictions": len(ds.Restrictions)}
	case StageBatches:
		return map[string]int{"batches": len(ds.Batches), "logs": len(ds.BatchLogs), "dose_sources": len(ds.DoseSources)}
	case StageVaccinations:
		return map[string]int{"vaccinations": len(ds.Vaccinations)}
	}
	return nil
}
