// Package tui is the terminal front end of the search widget. It drives the
// same SearchController as the web UI and exports cards into a directory.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"unisearch/models"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focus int

const (
	focusInput focus = iota
	focusCards
)

// maxVisibleCards bounds the list when the terminal height is unknown.
const maxVisibleCards = 8

// Options configures the terminal UI.
type Options struct {
	AutoSearch bool
	Debounce   time.Duration
	Dropdown   string

	// Sink receives exported cards; defaults to a FileSink in ExportDir.
	Sink      models.Sink
	ExportDir string
}

// changeMsg signals that the controller state changed.
type changeMsg struct{}

// searchDoneMsg is sent when a search issued by this model returns.
type searchDoneMsg struct{}

// debounceMsg fires after the user paused typing. Only the latest seq counts.
type debounceMsg struct {
	seq   int
	query string
}

// exportedMsg reports the outcome of a card export.
type exportedMsg struct {
	filename string
	ok       bool
}

// Model is the bubbletea model of the search widget.
type Model struct {
	ctrl     *models.SearchController
	exporter *models.CardExporter
	opts     Options
	changes  chan struct{}

	input   textinput.Model
	spinner spinner.Model
	view    models.View
	focus   focus
	cursor  int
	seq     int
	status  string
	width   int
	height  int
}

// New creates the model. Controller changes made elsewhere (a search that
// completes while the user keeps typing) are picked up through OnChange.
func New(ctrl *models.SearchController, exporter *models.CardExporter, opts Options) Model {
	if opts.Sink == nil {
		opts.Sink = models.FileSink{Dir: opts.ExportDir}
	}

	ti := textinput.New()
	ti.Placeholder = "Enter a country name..."
	ti.Prompt = "Country: "
	ti.CharLimit = 100
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	changes := make(chan struct{}, 1)
	ctrl.OnChange(func(models.Snapshot) {
		// coalesce: one pending signal is enough, the model re-reads the controller
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m := Model{
		ctrl:     ctrl,
		exporter: exporter,
		opts:     opts,
		changes:  changes,
		input:    ti,
		spinner:  s,
	}
	m.refresh()
	return m
}

// Init starts the cursor blink, the spinner and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.changes))
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changeMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.searchCmd(msg.query, models.TriggerAuto)

	case changeMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case searchDoneMsg:
		m.refresh()
		return m, nil

	case exportedMsg:
		if msg.ok {
			m.status = successStyle.Render("Saved " + msg.filename)
		} else {
			m.status = errorStyle.Render("Nothing exported")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.focus == focusInput {
			m.focus = focusCards
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleCardsKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.seq++ // cancel a pending debounce
		return m, m.searchCmd(m.input.Value(), models.TriggerExplicit)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if !m.opts.AutoSearch || m.input.Value() == before {
		return m, cmd
	}

	m.seq++
	seq, query := m.seq, m.input.Value()
	debounce := tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m Model) handleCardsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.view.Cards)-1 {
			m.cursor++
		}

	case "left", "h":
		m.cycleProvince(-1)

	case "right", "l":
		m.cycleProvince(1)

	case "d":
		if len(m.view.Cards) == 0 {
			return m, nil
		}
		return m, m.exportCmd(m.cursor)
	}
	return m, nil
}

// cycleProvince moves the selection dir steps through the province index.
func (m *Model) cycleProvince(dir int) {
	provinces := m.view.Session.Provinces
	if !m.view.Presentation.ShowDropdown || len(provinces) == 0 {
		return
	}

	current := 0
	for i, p := range provinces {
		if p == m.view.Session.SelectedProvince {
			current = i
			break
		}
	}
	next := (current + dir + len(provinces)) % len(provinces)

	m.ctrl.Select(provinces[next])
	m.cursor = 0
	m.refresh()
}

func (m Model) searchCmd(query string, trigger models.Trigger) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Search(context.Background(), query, trigger)
		return searchDoneMsg{}
	}
}

func (m Model) exportCmd(index int) tea.Cmd {
	// resolved when the export runs, not now
	ref := m.ctrl.CardRef(index)
	exporter, sink := m.exporter, m.opts.Sink
	return func() tea.Msg {
		ok := exporter.Export(context.Background(), ref, index, sink)
		return exportedMsg{filename: models.CardFilename(index), ok: ok}
	}
}

// refresh re-reads the controller, which is the single source of truth.
func (m *Model) refresh() {
	m.view = models.NewView(m.ctrl.Snapshot(), m.opts.Dropdown)
	if m.cursor >= len(m.view.Cards) {
		m.cursor = max(len(m.view.Cards)-1, 0)
	}
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("University Search"))
	b.WriteString("\n\n")

	inStyle := inputStyle
	if m.focus == focusInput {
		inStyle = focusedInputStyle
	}
	b.WriteString(inStyle.Render(m.input.View()))
	b.WriteString("\n")

	p := m.view.Presentation
	switch p.Phase {
	case models.PhaseLoading:
		b.WriteString(m.spinner.View() + " Loading...\n")

	case models.PhaseEmpty:
		b.WriteString(mutedStyle.Render(p.Message) + "\n")

	case models.PhaseResults:
		if p.ShowDropdown {
			b.WriteString(fmt.Sprintf("Province: %s %s %s  %s\n",
				mutedStyle.Render("◀"),
				provinceStyle.Render(m.view.Session.SelectedProvince),
				mutedStyle.Render("▶"),
				mutedStyle.Render(m.countText())))
		} else {
			b.WriteString(mutedStyle.Render(m.countText()) + "\n")
		}
		b.WriteString(m.renderCards())
	}

	if m.status != "" {
		b.WriteString("\n" + m.status)
	}

	help := "enter: search • tab: results • ctrl+c: quit"
	if m.focus == focusCards {
		help = "↑/↓: move • ←/→: province • d: export card • tab: search • q: quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func (m Model) countText() string {
	shown, total := len(m.view.Session.Filtered), len(m.view.Session.Results)
	if shown == total {
		return fmt.Sprintf("%d universities", total)
	}
	return fmt.Sprintf("%d of %d universities", shown, total)
}

func (m Model) renderCards() string {
	cards := m.view.Cards
	if len(cards) == 0 {
		return ""
	}

	visible := maxVisibleCards
	if m.height > 0 {
		// each card takes 5 rows with its border
		visible = max((m.height-12)/5, 1)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(cards))

	width := 60
	if m.width > 0 {
		width = max(min(m.width-4, 80), 20)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		card := cards[i]
		body := lipgloss.JoinVertical(lipgloss.Left,
			cardNameStyle.Width(width).Render(card.Name),
			mutedStyle.Render(card.ProvinceLabel),
			linkStyle.Render(card.LinkLabel)+" "+mutedStyle.Render(card.Website),
		)
		style := cardStyle
		if i == m.cursor && m.focus == focusCards {
			style = selectedCardStyle
		}
		b.WriteString(style.Render(body))
		b.WriteString("\n")
	}
	if end < len(cards) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more", len(cards)-end)) + "\n")
	}
	return b.String()
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
