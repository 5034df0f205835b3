package kb

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/signalsfoundry/cbtc-topology/core"
	"github.com/signalsfoundry/cbtc-topology/model"
)

var (
	ErrResultExists   = errors.New("result already recorded")
	ErrResultNotFound = errors.New("result not found")
	ErrResultBadInput = errors.New("invalid result")
)

// EventType indicates what kind of change happened in the store.
type EventType int

const (
	EventRunRecorded EventType = iota
	EventCleared
)

// Event is emitted to subscribers when something interesting happens.
type Event struct {
	Type     EventType
	Scenario model.ScenarioDefinition
	Report   *core.RunReport
}

// Result pairs a scenario with the report of its run.
type Result struct {
	Scenario model.ScenarioDefinition
	Report   *core.RunReport
}

// ResultStore is an in-memory, thread-safe store of topology-control
// results keyed by scenario ID. It remembers insertion order so result
// listings follow the order scenarios were run in.
type ResultStore struct {
	mu sync.RWMutex

	results map[string]*Result
	order   []string

	subs map[int]func(Event)
	next int
}

// NewResultStore constructs an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]*Result),
		subs:    make(map[int]func(Event)),
	}
}

// Record stores the report for a scenario and notifies subscribers. It
// returns an error if the scenario ID is empty or already recorded.
func (s *ResultStore) Record(def model.ScenarioDefinition, report *core.RunReport) error {
	if def.ID == "" || report == nil {
		return fmt.Errorf("%w: empty scenario ID or nil report", ErrResultBadInput)
	}

	s.mu.Lock()
	if _, exists := s.results[def.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrResultExists, def.ID)
	}
	s.results[def.ID] = &Result{Scenario: def, Report: report}
	s.order = append(s.order, def.ID)
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	event := Event{Type: EventRunRecorded, Scenario: def, Report: report}
	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// Get returns the result recorded for a scenario ID.
func (s *ResultStore) Get(id string) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrResultNotFound, id)
	}
	return r, nil
}

// List returns every result in the order it was recorded.
func (s *ResultStore) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*Result, 0, len(s.order))
	for _, id := range s.order {
		res = append(res, s.results[id])
	}
	return res
}

// Len returns the number of recorded results.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear drops every result and notifies subscribers.
func (s *ResultStore) Clear() {
	s.mu.Lock()
	s.results = make(map[string]*Result)
	s.order = nil
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(Event{Type: EventCleared})
	}
}

// Subscribe registers a callback for store events. It returns an unsubscribe function.
func (s *ResultStore) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *ResultStore) snapshotSubsLocked() []func(Event) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	// Deliver in subscription order.
	slices.Sort(ids)
	out := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}
