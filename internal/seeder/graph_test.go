package seeder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *Dataset) error { return nil }

func TestBuildOrderRespectsDependencies(t *testing.T) {
	g := NewDependencyGraph()
	g.AddStage(&Stage{Name: "vaccinations", Dependencies: []string{"citizens", "batches"}, Run: noop})
	g.AddStage(&Stage{Name: "batches", Dependencies: []string{"facilities"}, Run: noop})
	g.AddStage(&Stage{Name: "citizens", Run: noop})
	g.AddStage(&Stage{Name: "facilities", Run: noop})

	order, err := g.BuildOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"citizens", "facilities", "batches", "vaccinations"}, order)
	assert.Equal(t, order, g.GetOrder())
}

func TestBuildOrderDetectsCycle(t *testing.T) {
	g := NewDependencyGraph()
	g.AddStage(&Stage{Name: "a", Dependencies: []string{"b"}, Run: noop})
	g.AddStage(&Stage{Name: "b", Dependencies: []string{"a"}, Run: noop})

	_, err := g.BuildOrder()
	assert.ErrorContains(t, err, "circular dependency")
}

func TestBuildOrderUnknownStage(t *testing.T) {
	g := NewDependencyGraph()
	g.AddStage(&Stage{Name: "a", Dependencies: []string{"missing"}, Run: noop})

	_, err := g.BuildOrder()
	assert.ErrorContains(t, err, "unknown stage")
}

func TestSynthesizerSchedule(t *testing.T) {
	s, err := NewSynthesizer(DefaultParams(), &scriptedProvider{}, nil)
	require.NoError(t, err)

	order := s.Order()
	assert.Equal(t, []string{
		StageRegions, StageReferences, StageCitizens, StageFacilities,
		StageRestrictions, StageBatches, StageVaccinations,
	}, order)
}
