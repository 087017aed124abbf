package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"unisearch/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	mu    sync.Mutex
	calls int
}

func (sd *stubDirectory) Search(_ context.Context, country string) ([]models.University, error) {
	sd.mu.Lock()
	sd.calls++
	sd.mu.Unlock()

	if country != "Pakistan" {
		return []models.University{}, nil
	}
	return []models.University{
		{Name: "Karachi University", StateProvince: models.StrPtr("Sindh"), WebPages: []string{"https://uok.edu.pk"}},
		{Name: "Punjab University", StateProvince: models.StrPtr("Punjab"), WebPages: []string{"https://pu.edu.pk"}},
		{Name: "NUST", WebPages: []string{"https://nust.edu.pk"}},
	}, nil
}

func (sd *stubDirectory) count() int {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	return sd.calls
}

type captureSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (cs *captureSink) Deliver(filename string, data []byte) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.files[filename] = data
	return nil
}

func newTestModel(t *testing.T, autoSearch bool) (Model, *stubDirectory, *captureSink) {
	t.Helper()
	dir := &stubDirectory{}
	sink := &captureSink{files: map[string][]byte{}}
	ctrl := models.NewSearchController(dir, models.ControllerOptions{AutoSearch: autoSearch})
	exporter := models.NewCardExporter(models.JPEGRasterizer{Quality: 80, Scale: 1})

	m := New(ctrl, exporter, Options{
		AutoSearch: autoSearch,
		Debounce:   10 * time.Millisecond,
		Dropdown:   models.DropdownAlways,
		Sink:       sink,
	})
	return m, dir, sink
}

// send feeds msg to the model and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// search types query, presses enter and runs the resulting command.
func search(t *testing.T, m Model, query string) Model {
	t.Helper()
	m, _ = typeText(t, m, query)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	return m
}

func TestTUI_InitialView(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	out := m.View()
	assert.Contains(t, out, "University Search")
	assert.NotContains(t, out, "No universities found.")
	assert.Equal(t, models.PhaseNotSearched, m.view.Presentation.Phase)
}

func TestTUI_EnterSearches(t *testing.T) {
	m, dir, _ := newTestModel(t, false)
	m = search(t, m, "Pakistan")

	assert.Equal(t, 1, dir.count())
	assert.Equal(t, models.StatusSucceeded, m.view.Session.Status)

	out := m.View()
	assert.Contains(t, out, "Karachi University")
	assert.Contains(t, out, "Visit Website")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Province:")
}

func TestTUI_EmptyResult(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	m = search(t, m, "Atlantis")

	assert.Contains(t, m.View(), "No universities found.")
}

func TestTUI_DebounceKeepsOnlyLatest(t *testing.T) {
	m, dir, _ := newTestModel(t, true)

	m, cmd := typeText(t, m, "Pak")
	assert.NotNil(t, cmd)
	stale := debounceMsg{seq: m.seq, query: "Pak"}

	m, _ = typeText(t, m, "istan")

	// the first pause is superseded by further typing
	m, cmd = send(t, m, stale)
	assert.Nil(t, cmd)

	m, cmd = send(t, m, debounceMsg{seq: m.seq, query: "Pakistan"})
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, 1, dir.count())
	assert.Equal(t, "Pakistan", m.view.Session.Query)
}

func TestTUI_TypingWithoutAutoSearchDoesNotDebounce(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	m, _ = typeText(t, m, "Chile")
	assert.Equal(t, 0, m.seq)
}

func TestTUI_CycleProvinces(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	m = search(t, m, "Pakistan")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusCards, m.focus)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Sindh", m.view.Session.SelectedProvince)
	require.Len(t, m.view.Cards, 1)
	assert.Equal(t, "Karachi University", m.view.Cards[0].Name)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Punjab", m.view.Session.SelectedProvince)

	// wraps around to All
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "All", m.view.Session.SelectedProvince)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Punjab", m.view.Session.SelectedProvince)
}

func TestTUI_ExportCard(t *testing.T) {
	m, _, sink := newTestModel(t, false)
	m = search(t, m, "Pakistan")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)

	m, _ = send(t, m, cmd())
	assert.Contains(t, sink.files, "university_card_1.jpg")
	assert.Contains(t, m.View(), "Saved university_card_1.jpg")
}

func TestTUI_ExportStaleCardIsNoOp(t *testing.T) {
	m, _, sink := newTestModel(t, false)
	m = search(t, m, "Pakistan")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)

	// the filter changes before the export runs
	m.ctrl.Select("Sindh")

	m, _ = send(t, m, cmd())
	assert.Empty(t, sink.files)
	assert.Contains(t, m.View(), "Nothing exported")
}

func TestTUI_QuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	// q is text while the input has focus
	m, _ = typeText(t, m, "q")
	assert.Equal(t, "q", m.input.Value())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTUI_ChangeListenerRefreshes(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	// a search started outside the model still shows up
	m.ctrl.Search(context.Background(), "Pakistan", models.TriggerExplicit)
	m, cmd := send(t, m, changeMsg{})
	assert.NotNil(t, cmd, "listener should be re-armed")
	assert.Equal(t, models.StatusSucceeded, m.view.Session.Status)
}
