package models

// Phase is what the results area of the UI is showing.
type Phase string

const (
	PhaseNotSearched Phase = "not_searched"
	PhaseLoading     Phase = "loading"
	PhaseResults     Phase = "results"
	PhaseEmpty       Phase = "empty"
)

// NoResultsMessage is shown for an empty result set and for a failed
// search alike.
const NoResultsMessage = "No universities found."

// Dropdown visibility policies (mirrors config.DropdownAlways/Multiple).
const (
	DropdownAlways   = "always"
	DropdownMultiple = "multiple"
)

// Presentation tells a renderer which parts of the widget to draw.
type Presentation struct {
	Phase            Phase  `json:"phase" msgpack:"phase"`
	ShowLoading      bool   `json:"show_loading" msgpack:"show_loading"`
	ShowGrid         bool   `json:"show_grid" msgpack:"show_grid"`
	ShowEmptyMessage bool   `json:"show_empty_message" msgpack:"show_empty_message"`
	ShowDropdown     bool   `json:"show_dropdown" msgpack:"show_dropdown"`
	Message          string `json:"message,omitempty" msgpack:"message,omitempty"`
}

// Present derives the presentation state of a snapshot.
//
//	idle, nothing searched      -> NotSearched
//	loading                     -> Loading
//	succeeded with results      -> Results (filtered grid, possibly empty after filtering)
//	succeeded empty, or failed  -> Empty with NoResultsMessage
func Present(snap Snapshot, dropdownMode string) Presentation {
	switch {
	case snap.Status == StatusLoading:
		return Presentation{Phase: PhaseLoading, ShowLoading: true}

	case !snap.SearchPerformed || snap.Status == StatusIdle:
		return Presentation{Phase: PhaseNotSearched}

	case len(snap.Results) == 0:
		return Presentation{Phase: PhaseEmpty, ShowEmptyMessage: true, Message: NoResultsMessage}
	}

	p := Presentation{Phase: PhaseResults, ShowGrid: true}
	switch dropdownMode {
	case DropdownMultiple:
		p.ShowDropdown = RealProvinceCount(snap.Provinces) > 1
	default:
		p.ShowDropdown = true
	}
	return p
}
