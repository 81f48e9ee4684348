package seeder

import (
	"context"
	"fmt"
)

// Stage appends one group of entities to the dataset. It may read anything
// produced by the stages it depends on.
type Stage struct {
	Name         string
	Dependencies []string
	Run          func(ctx context.Context, ds *Dataset) error
}

type DependencyGraph struct {
	stages map[string]*Stage
	names  []string
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		stages: make(map[string]*Stage),
	}
}

func (g *DependencyGraph) AddStage(stage *Stage) {
	if _, exists := g.stages[stage.Name]; !exists {
		g.names = append(g.names, stage.Name)
	}
	g.stages[stage.Name] = stage
}

func (g *DependencyGraph) Stage(name string) *Stage {
	return g.stages[name]
}

// BuildOrder collapses the graph into a linear schedule. Ties are broken by
// registration order so the schedule is stable between runs.
func (g *DependencyGraph) BuildOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving stage: %s", name)
		}
		if visited[name] {
			return nil
		}

		stage := g.stages[name]
		if stage == nil {
			return fmt.Errorf("unknown stage: %s", name)
		}

		temp[name] = true
		for _, dep := range stage.Dependencies {
			if dep == name {
				return fmt.Errorf("stage %s depends on itself", name)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range g.names {
		if !visited[name] {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}
