package models

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rohanthewiz/logger"
)

// ============================================================================
// Search Controller
//
// Owns the search session of one user: query, status, results, the derived
// province index and the province selection. State only changes through
// Search and Select.
//
// Every search takes a new generation number when it starts. A completion
// is applied only if its generation is still the latest, so a slow response
// can never overwrite the results of a search issued after it.
// The mutex is never held across the directory call.
// ============================================================================

// ControllerOptions configures a SearchController.
type ControllerOptions struct {
	// AutoSearch enables searching on TriggerAuto. When false, auto
	// triggers are ignored and only explicit searches fetch.
	AutoSearch bool
}

// SearchController drives searches for one session.
type SearchController struct {
	dir  Directory
	opts ControllerOptions

	mu        sync.Mutex
	session   SearchSession
	provinces []string
	selected  string
	listeners []func(Snapshot)

	// inflight is closed once the latest started search has completed.
	inflight chan struct{}
}

// NewSearchController returns a controller in the not-yet-searched state.
func NewSearchController(dir Directory, opts ControllerOptions) *SearchController {
	return &SearchController{
		dir:       dir,
		opts:      opts,
		session:   SearchSession{Status: StatusIdle},
		provinces: []string{AllProvinces},
		selected:  AllProvinces,
	}
}

// OnChange registers fn to be called with a fresh snapshot after every
// state transition. Listeners run on the goroutine that caused the change.
func (sc *SearchController) OnChange(fn func(Snapshot)) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.listeners = append(sc.listeners, fn)
}

// Snapshot returns the current state.
func (sc *SearchController) Snapshot() Snapshot {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.snapshotLocked()
}

// Search looks up the universities of query and returns the resulting
// snapshot. Failures never surface as errors: they end in StatusFailed with
// no results. An empty or whitespace-only query changes nothing.
func (sc *SearchController) Search(ctx context.Context, query string, trigger Trigger) Snapshot {
	query = strings.TrimSpace(query)
	if query == "" {
		return sc.Snapshot()
	}

	gen, done, ok := sc.begin(query, trigger)
	if !ok {
		if done != nil {
			// The same query is already loading: answer with its outcome
			// rather than with the loading state.
			select {
			case <-done:
			case <-ctx.Done():
			}
		}
		return sc.Snapshot()
	}
	defer close(done)

	records, err := sc.dir.Search(ctx, query)
	return sc.complete(gen, query, records, err)
}

// Select changes the province selection. Values not in the province index
// are accepted and simply produce an empty filtered view.
func (sc *SearchController) Select(province string) Snapshot {
	sc.mu.Lock()
	sc.selected = province
	snap := sc.snapshotLocked()
	listeners := sc.listeners
	sc.mu.Unlock()

	notify(listeners, snap)
	return snap
}

// begin moves the controller into StatusLoading and returns the generation
// of the new search along with the channel closed when it completes. It
// reports false when the search should not run; done is then the channel of
// an identical search still loading, or nil.
func (sc *SearchController) begin(query string, trigger Trigger) (gen uint64, done chan struct{}, ok bool) {
	sc.mu.Lock()

	if trigger == TriggerAuto {
		if !sc.opts.AutoSearch {
			sc.mu.Unlock()
			return 0, nil, false
		}
		// Typing that lands back on the query already loading or shown
		// does not need another request.
		if query == sc.session.Query {
			switch sc.session.Status {
			case StatusLoading:
				done = sc.inflight
				sc.mu.Unlock()
				logger.Debug("Joining in-flight auto search", "query", query)
				return 0, done, false
			case StatusSucceeded:
				sc.mu.Unlock()
				logger.Debug("Skipping redundant auto search", "query", query)
				return 0, nil, false
			}
		}
	}

	gen = sc.session.Generation + 1
	done = make(chan struct{})
	sc.inflight = done
	sc.session = SearchSession{
		Query:           query,
		Status:          StatusLoading,
		Results:         []University{},
		SearchPerformed: true,
		Generation:      gen,
	}
	sc.provinces = []string{AllProvinces}
	sc.selected = AllProvinces

	snap := sc.snapshotLocked()
	listeners := sc.listeners
	sc.mu.Unlock()

	logger.Debug("Search started", "query", query, "generation", gen, "trigger", string(trigger))
	notify(listeners, snap)
	return gen, done, true
}

// complete applies the outcome of search gen, unless a newer search has
// started since, in which case the outcome is dropped.
func (sc *SearchController) complete(gen uint64, query string, records []University, err error) Snapshot {
	sc.mu.Lock()

	if gen != sc.session.Generation {
		snap := sc.snapshotLocked()
		sc.mu.Unlock()
		logger.Debug("Dropping stale search result", "query", query, "generation", gen, "latest", snap.Generation)
		return snap
	}

	if err != nil {
		kind := FailureNetwork
		var dirErr *DirectoryError
		if errors.As(err, &dirErr) {
			kind = dirErr.Kind
		}
		logger.LogErr(err, "Error fetching universities", "query", query, "failure", string(kind))

		sc.session.Status = StatusFailed
		sc.session.Failure = kind
		sc.session.Results = []University{}
		sc.provinces = []string{AllProvinces}
	} else {
		if records == nil {
			records = []University{}
		}
		sc.session.Status = StatusSucceeded
		sc.session.Results = records
		sc.provinces = DeriveProvinces(records)
		logger.Info("Search completed", "query", query, "results", len(records), "provinces", len(sc.provinces)-1)
	}
	sc.selected = AllProvinces

	snap := sc.snapshotLocked()
	listeners := sc.listeners
	sc.mu.Unlock()

	notify(listeners, snap)
	return snap
}

func (sc *SearchController) snapshotLocked() Snapshot {
	results := append([]University(nil), sc.session.Results...)
	if results == nil {
		results = []University{}
	}
	filtered := append([]University(nil), ApplyFilter(results, sc.selected)...)
	if filtered == nil {
		filtered = []University{}
	}

	return Snapshot{
		Query:            sc.session.Query,
		Status:           sc.session.Status,
		SearchPerformed:  sc.session.SearchPerformed,
		Failure:          sc.session.Failure,
		Generation:       sc.session.Generation,
		Provinces:        append([]string(nil), sc.provinces...),
		SelectedProvince: sc.selected,
		Results:          results,
		Filtered:         filtered,
	}
}

func notify(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
