package models

// Status is the lifecycle state of the current search session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Trigger records what started a search. Auto searches come from typing and
// are subject to the redundant-request guard; explicit ones always fetch.
type Trigger string

const (
	TriggerExplicit Trigger = "explicit"
	TriggerAuto     Trigger = "auto"
)

// ParseTrigger maps a request parameter to a Trigger, defaulting to explicit.
func ParseTrigger(s string) Trigger {
	if Trigger(s) == TriggerAuto {
		return TriggerAuto
	}
	return TriggerExplicit
}

// SearchSession is the state produced by one search invocation.
// A new search replaces it wholesale.
type SearchSession struct {
	Query           string
	Status          Status
	Results         []University
	SearchPerformed bool
	Generation      uint64
	Failure         FailureKind // set only when Status is StatusFailed
}

// Snapshot is an immutable view of a controller handed to renderers.
// Slices are copies; mutating them does not affect the controller.
type Snapshot struct {
	Query            string       `json:"query" msgpack:"query"`
	Status           Status       `json:"status" msgpack:"status"`
	SearchPerformed  bool         `json:"search_performed" msgpack:"search_performed"`
	Failure          FailureKind  `json:"failure,omitempty" msgpack:"failure,omitempty"`
	Generation       uint64       `json:"generation" msgpack:"generation"`
	Provinces        []string     `json:"provinces" msgpack:"provinces"`
	SelectedProvince string       `json:"selected_province" msgpack:"selected_province"`
	Results          []University `json:"results" msgpack:"results"`
	Filtered         []University `json:"filtered" msgpack:"filtered"`
}

// Card returns the card rendered at position index of the filtered view.
func (s Snapshot) Card(index int) (Card, bool) {
	if index < 0 || index >= len(s.Filtered) {
		return Card{}, false
	}
	return NewCard(s.Filtered[index]), true
}
