package models_test

import (
	"testing"

	"unisearch/models"
)

func TestPresentNotSearched(t *testing.T) {
	p := models.Present(models.Snapshot{Status: models.StatusIdle}, models.DropdownAlways)
	if p.Phase != models.PhaseNotSearched {
		t.Errorf("expected not_searched, got %s", p.Phase)
	}
	if p.ShowGrid || p.ShowEmptyMessage || p.ShowDropdown || p.ShowLoading {
		t.Errorf("expected nothing shown before the first search, got %+v", p)
	}
}

func TestPresentLoading(t *testing.T) {
	p := models.Present(models.Snapshot{Status: models.StatusLoading, SearchPerformed: true}, models.DropdownAlways)
	if p.Phase != models.PhaseLoading || !p.ShowLoading {
		t.Errorf("expected loading indicator, got %+v", p)
	}
	if p.ShowGrid || p.ShowEmptyMessage {
		t.Errorf("expected no grid or message while loading, got %+v", p)
	}
}

func TestPresentEmptyAndFailedShareMessage(t *testing.T) {
	empty := models.Present(models.Snapshot{
		Status: models.StatusSucceeded, SearchPerformed: true, Results: []models.University{},
	}, models.DropdownAlways)
	failed := models.Present(models.Snapshot{
		Status: models.StatusFailed, SearchPerformed: true, Failure: models.FailureNetwork,
	}, models.DropdownAlways)

	for name, p := range map[string]models.Presentation{"empty": empty, "failed": failed} {
		if p.Phase != models.PhaseEmpty || !p.ShowEmptyMessage {
			t.Errorf("%s: expected empty phase with message, got %+v", name, p)
		}
		if p.Message != "No universities found." {
			t.Errorf("%s: unexpected message %q", name, p.Message)
		}
		if p.ShowGrid || p.ShowDropdown {
			t.Errorf("%s: expected no grid or dropdown, got %+v", name, p)
		}
	}
}

func TestPresentResultsDropdownModes(t *testing.T) {
	snap := models.Snapshot{
		Status:          models.StatusSucceeded,
		SearchPerformed: true,
		Results:         []models.University{{Name: "NUST"}},
		Filtered:        []models.University{{Name: "NUST"}},
		Provinces:       []string{"All"},
	}

	p := models.Present(snap, models.DropdownAlways)
	if p.Phase != models.PhaseResults || !p.ShowGrid || !p.ShowDropdown {
		t.Errorf("expected grid and dropdown in always mode, got %+v", p)
	}

	if p := models.Present(snap, models.DropdownMultiple); p.ShowDropdown {
		t.Errorf("expected no dropdown with zero real provinces, got %+v", p)
	}

	snap.Provinces = []string{"All", "Sindh"}
	if p := models.Present(snap, models.DropdownMultiple); p.ShowDropdown {
		t.Errorf("expected no dropdown with one real province, got %+v", p)
	}

	snap.Provinces = []string{"All", "Sindh", "Punjab"}
	if p := models.Present(snap, models.DropdownMultiple); !p.ShowDropdown {
		t.Errorf("expected dropdown with two real provinces, got %+v", p)
	}
}

func TestPresentFilteredToNothingKeepsGrid(t *testing.T) {
	snap := models.Snapshot{
		Status:           models.StatusSucceeded,
		SearchPerformed:  true,
		Results:          pakistan(),
		Filtered:         []models.University{},
		Provinces:        models.DeriveProvinces(pakistan()),
		SelectedProvince: "Atlantis",
	}
	p := models.Present(snap, models.DropdownAlways)
	if p.Phase != models.PhaseResults || !p.ShowGrid {
		t.Errorf("expected an empty grid rather than the empty message, got %+v", p)
	}
	if p.ShowEmptyMessage {
		t.Errorf("expected no empty message for a filtered-out view, got %+v", p)
	}
}
