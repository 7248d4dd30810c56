// Package ui renders the notes screens (List, Add, Edit) with Bubble Tea
// and Lip Gloss.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/store"
)

type screen int

const (
	screenList screen = iota
	screenAdd
	screenEdit
)

// Options tune the interactive program.
type Options struct {
	// StrictEdit applies the create rule on the Edit screen.
	StrictEdit bool
	// NoticeDuration is how long a confirmation stays visible.
	NoticeDuration time.Duration
	Width, Height  int
}

type eventMsg struct{ ev store.Event }

type clearNoticeMsg struct{ seq int }

// Model is the Bubble Tea model for the whole application.
type Model struct {
	store  *store.Store
	logger *log.Logger
	opts   Options

	events      <-chan store.Event
	unsubscribe func()

	screen   screen
	list     list.Model
	form     form
	editID   int
	listKeys listKeys
	formKeys formKeys

	status    string
	notice    string
	noticeSeq int

	width, height int
}

// New builds the model and subscribes it to store events. Call Close when
// the program ends.
func New(st *store.Store, logger *log.Logger, opts Options) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = 3 * time.Second
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}

	keys := newListKeys()
	l := list.New(nil, recordDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("note", "notes")
	l.Styles.Title = Current().Title
	l.Styles.HelpStyle = Current().Help
	l.Styles.PaginationStyle = Current().Help
	l.AdditionalShortHelpKeys = keys.help
	l.AdditionalFullHelpKeys = keys.help
	l.DisableQuitKeybindings()

	events, unsubscribe := st.Subscribe()
	m := Model{
		store:       st,
		logger:      logger,
		opts:        opts,
		events:      events,
		unsubscribe: unsubscribe,
		list:        l,
		form:        newForm(),
		listKeys:    keys,
		formKeys:    newFormKeys(),
	}
	m.resize(opts.Width, opts.Height)
	m.refresh()
	return m
}

// Close releases the store subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

func clearNoticeAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case eventMsg:
		return m.handleEvent(msg.ev)

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenAdd, screenEdit:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.screen != screenList {
		return m, m.form.update(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleEvent(ev store.Event) (tea.Model, tea.Cmd) {
	m.logger.Debug("store event", "kind", ev.Kind, "id", ev.Record.ID)
	cmds := []tea.Cmd{waitForEvent(m.events)}
	if ev.Message != "" {
		m.noticeSeq++
		m.notice = ev.Message
		cmds = append(cmds, clearNoticeAfter(m.opts.NoticeDuration, m.noticeSeq))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.listKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.listKeys.Add):
		m.screen = screenAdd
		return m, m.form.reset("", "", "Add Todo", true)

	case key.Matches(msg, m.listKeys.Edit):
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m.openEdit(rec.ID)

	case key.Matches(msg, m.listKeys.Toggle):
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}
		if _, err := m.store.ToggleComplete(rec.ID); err != nil {
			m.logger.Warn("toggle failed", "id", rec.ID, "err", err)
			m.status = err.Error()
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.listKeys.Delete):
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.Delete(rec.ID)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// openEdit resolves the record before showing the Edit screen.
func (m Model) openEdit(id int) (tea.Model, tea.Cmd) {
	rec, ok := m.store.FindByID(id)
	if !ok {
		m.status = fmt.Sprintf("note %d no longer exists", id)
		m.refresh()
		return m, nil
	}
	m.screen = screenEdit
	m.editID = rec.ID
	return m, m.form.reset(rec.Title, rec.Subtitle, "Save", m.opts.StrictEdit)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.formKeys.Back):
		m.backToList()
		return m, nil
	case key.Matches(msg, m.formKeys.Next):
		return m, m.form.setFocus(m.form.focus + 1)
	case key.Matches(msg, m.formKeys.Prev):
		return m, m.form.setFocus(m.form.focus - 1)
	case key.Matches(msg, m.formKeys.Submit):
		if m.screen == screenAdd {
			return m.submitAdd()
		}
		return m.submitEdit()
	}
	return m, m.form.update(msg)
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	if err := m.form.validate(); err != nil {
		return m, nil
	}
	title, subtitle := m.form.values()
	rec, err := m.store.Create(title, subtitle)
	if err != nil {
		m.form.message = model.Message(err)
		return m, nil
	}
	m.backToList()
	m.list.Select(len(m.list.Items()) - 1)
	m.logger.Info("note added", "id", rec.ID)
	return m, nil
}

func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	if err := m.form.validate(); err != nil {
		return m, nil
	}
	title, subtitle := m.form.values()
	rec, err := m.store.Update(m.editID, title, subtitle)
	switch {
	case errors.Is(err, model.ErrNotFound):
		m.logger.Warn("edit target vanished", "id", m.editID)
		m.backToList()
		m.status = err.Error()
		return m, nil
	case err != nil:
		m.form.message = model.Message(err)
		return m, nil
	}
	m.backToList()
	m.logger.Info("note updated", "id", rec.ID)
	return m, nil
}

func (m *Model) backToList() {
	m.screen = screenList
	for i := range m.form.inputs {
		m.form.inputs[i].Blur()
	}
	m.refresh()
}

// refresh re-reads the store into the list, keeping the selection in range.
func (m *Model) refresh() {
	idx := m.list.Index()
	items := toListItems(m.store.List())
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	done, pending := m.store.Stats()
	m.list.Title = Header("Notes List", done, pending)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	// border, padding, progress and status lines
	m.list.SetSize(max(w-4, 10), max(h-6, 5))
	for i := range m.form.inputs {
		m.form.inputs[i].Width = max(w-10, 10)
	}
}

func (m Model) selected() (model.Record, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Record{}, false
	}
	return it.rec, true
}

func (m Model) View() string {
	t := Current()
	var b strings.Builder

	switch m.screen {
	case screenAdd:
		b.WriteString(t.Title.Render("Add Todo") + "\n\n")
		b.WriteString(m.form.view())
		b.WriteString("\n\n" + t.Help.Render("tab switch field • enter save • esc back"))
	case screenEdit:
		b.WriteString(t.Title.Render("Edit Todo") + "\n\n")
		b.WriteString(m.form.view())
		b.WriteString("\n\n" + t.Help.Render("tab switch field • enter save • esc back"))
	default:
		done, pending := m.store.Stats()
		b.WriteString(t.Muted.Render(ProgressBar(done, done+pending, 28)) + "\n")
		if len(m.list.Items()) == 0 {
			b.WriteString(t.Title.Render("Notes List") + "\n\n")
			b.WriteString(t.Muted.Render("no notes yet, press a to add one"))
		} else {
			b.WriteString(m.list.View())
		}
	}

	if m.status != "" {
		b.WriteString("\n" + t.Error.Render(m.status))
	}
	if m.notice != "" {
		b.WriteString("\n" + t.Success.Render(t.SymDone+" "+m.notice))
	}
	return Panel([]string{b.String()})
}
