// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"testing"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/shared"
)

// StageCall records one [MockStore.SetItemStage] invocation.
type StageCall struct {
	Kind  kanban.Kind
	ID    string
	Stage string
}

// MockStore is an in-memory [kanban.Store].
//
// Stage updates fail for IDs listed in FailStage. When DetailGate is non-nil, GetItemDetail
// blocks until the gate is closed or the context is done.
type MockStore struct {
	mu     sync.Mutex
	stages map[kanban.Kind][]string
	items  map[kanban.Kind][]kanban.Item

	FailStage  map[string]error
	FailList   error
	DetailGate chan struct{}

	stageCalls  []StageCall
	listCalls   int
	detailCalls int
}

// NewMockStore creates a store holding copies of stages and items for kind.
func NewMockStore(kind kanban.Kind, stages []string, items []kanban.Item) *MockStore {
	return &MockStore{
		stages:    map[kanban.Kind][]string{kind: slices.Clone(stages)},
		items:     map[kanban.Kind][]kanban.Item{kind: slices.Clone(items)},
		FailStage: map[string]error{},
	}
}

func (m *MockStore) ListItems(ctx context.Context, kind kanban.Kind, filter kanban.Filter) ([]kanban.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if m.FailList != nil {
		return nil, m.FailList
	}
	return kanban.Search(slices.Clone(m.items[kind]), filter.Search), nil
}

func (m *MockStore) ListStages(ctx context.Context, kind kanban.Kind) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.stages[kind]), nil
}

func (m *MockStore) SetItemStage(ctx context.Context, kind kanban.Kind, id, stage string) (kanban.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stageCalls = append(m.stageCalls, StageCall{Kind: kind, ID: id, Stage: stage})
	if err, ok := m.FailStage[id]; ok {
		return kanban.Item{}, err
	}

	items := slices.Clone(m.items[kind])
	for i, item := range items {
		if item.ID == id {
			items[i] = item.WithStage(stage)
			m.items[kind] = items
			return items[i], nil
		}
	}
	return kanban.Item{}, fmt.Errorf("%w: %s %s", shared.ErrItemNotFound, kind, id)
}

func (m *MockStore) GetItemDetail(ctx context.Context, kind kanban.Kind, id string) (kanban.Detail, error) {
	m.mu.Lock()
	m.detailCalls++
	gate := m.DetailGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return kanban.Detail{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items[kind] {
		if item.ID == id {
			return kanban.Detail{
				Item:   item,
				Fields: []kanban.Field{{Label: "Title", Value: item.Title}},
			}, nil
		}
	}
	return kanban.Detail{}, fmt.Errorf("%w: %s %s", shared.ErrItemNotFound, kind, id)
}

// Remove deletes an item so later updates fail with not found.
func (m *MockStore) Remove(kind kanban.Kind, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[kind] = slices.DeleteFunc(slices.Clone(m.items[kind]), func(i kanban.Item) bool { return i.ID == id })
}

// Stage returns the stored stage of an item.
func (m *MockStore) Stage(kind kanban.Kind, id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items[kind] {
		if item.ID == id {
			return item.Stage
		}
	}
	return ""
}

// StageCalls returns every stage update received so far.
func (m *MockStore) StageCalls() []StageCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.stageCalls)
}

func (m *MockStore) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func (m *MockStore) DetailCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detailCalls
}

// PipelineStages is the candidate stage list used across tests.
func PipelineStages() []string {
	return []string{"Screening", "Interview", "Offer"}
}

// PipelineItems returns two candidates: "1" in Screening and "2" in Offer.
func PipelineItems() []kanban.Item {
	return []kanban.Item{
		{ID: "1", Kind: kanban.KindCandidate, Title: "Ada Lovelace", Subtitle: "Backend Developer", Stage: "Screening", Tags: []string{"Go", "SQL"}},
		{ID: "2", Kind: kanban.KindCandidate, Title: "Grace Hopper", Subtitle: "Frontend Developer", Stage: "Offer", Tags: []string{"React"}},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
