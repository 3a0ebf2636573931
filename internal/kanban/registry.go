package kanban

import (
	"fmt"
	"slices"
	"strings"
)

// Registry is the ordered, immutable list of stages for one kind of item.
//
// Stage names double as column identifiers and titles.
type Registry struct {
	kind   Kind
	stages []string
}

// NewRegistry validates and copies stages. Names must be non-empty and unique.
func NewRegistry(kind Kind, stages []string) (*Registry, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("no stages defined for %s", kind.Plural())
	}

	seen := make(map[string]bool, len(stages))
	for _, s := range stages {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("empty stage name for %s", kind.Plural())
		}
		if seen[s] {
			return nil, fmt.Errorf("duplicate stage %q for %s", s, kind.Plural())
		}
		seen[s] = true
	}

	return &Registry{kind: kind, stages: slices.Clone(stages)}, nil
}

func (r *Registry) Kind() Kind { return r.kind }

// Stages returns a copy of the stage names in column order.
func (r *Registry) Stages() []string {
	return slices.Clone(r.stages)
}

func (r *Registry) Len() int { return len(r.stages) }

// Index returns the column position of stage, or -1.
func (r *Registry) Index(stage string) int {
	return slices.Index(r.stages, stage)
}

func (r *Registry) Contains(stage string) bool {
	return r.Index(stage) >= 0
}

// Next returns the stage offset by delta columns from stage, clamped to the board.
func (r *Registry) Next(stage string, delta int) string {
	idx := r.Index(stage)
	if idx < 0 {
		return stage
	}
	idx = max(0, min(len(r.stages)-1, idx+delta))
	return r.stages[idx]
}
