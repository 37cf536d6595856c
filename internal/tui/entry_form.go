package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ltemarine/shiplog/internal/utils"
	"github.com/ltemarine/shiplog/models"
)

// formState is the add/edit entry form. Three text inputs plus a tag picker;
// an empty editingID means a new entry is being created.
type formState struct {
	editingID string
	vessel    string
	date      string
	pending   bool

	inputs []textinput.Model
	focus  int
	tagIdx int // index into tags+1, 0 means no tag

	saving bool
	errMsg string
}

const (
	formFieldStart = iota
	formFieldEnd
	formFieldActivity
	formFieldTag
	formFieldCount
)

func (m *mainLoopModel) startForm(entry models.Entry) {
	startInput := textinput.New()
	startInput.Placeholder = "0800"
	startInput.CharLimit = 4
	startInput.Width = 6
	startInput.SetValue(entry.Start)
	startInput.Focus()

	endInput := textinput.New()
	endInput.Placeholder = "1230"
	endInput.CharLimit = 4
	endInput.Width = 6
	endInput.SetValue(entry.End)

	activityInput := textinput.New()
	activityInput.Placeholder = "what happened"
	activityInput.CharLimit = 200
	activityInput.Width = 40
	activityInput.SetValue(entry.Activity)

	tagIdx := 0
	for i, tag := range m.tags {
		if tag.Name == entry.Tag {
			tagIdx = i + 1
			break
		}
	}

	m.form = formState{
		editingID: entry.ID,
		vessel:    entry.Vessel,
		date:      entry.Date,
		pending:   entry.PendingSync,
		inputs:    []textinput.Model{startInput, endInput, activityInput},
		tagIdx:    tagIdx,
	}
	m.page = pageForm
}

func (f formState) initCmd() tea.Cmd {
	return textinput.Blink
}

func (m mainLoopModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.form.focus < len(m.form.inputs) {
			var cmd tea.Cmd
			m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.page = pageTimesheet
		return m, nil
	case "tab", "down":
		m.formFocusNext()
		return m, nil
	case "shift+tab", "up":
		m.formFocusPrev()
		return m, nil
	case "left", "right":
		if m.form.focus == formFieldTag {
			options := len(m.tags) + 1
			if keyMsg.String() == "right" {
				m.form.tagIdx = (m.form.tagIdx + 1) % options
			} else {
				m.form.tagIdx = (m.form.tagIdx - 1 + options) % options
			}
			return m, nil
		}
	case "enter":
		if m.form.saving {
			return m, nil
		}

		entry, err := m.formEntry()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}

		m.form.errMsg = ""
		m.form.saving = true
		return m, m.cmdSaveEntry(entry)
	}

	if m.form.focus < len(m.form.inputs) {
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// formEntry validates the form and assembles the entry to save.
func (m mainLoopModel) formEntry() (models.Entry, error) {
	start := strings.TrimSpace(m.form.inputs[formFieldStart].Value())
	end := strings.TrimSpace(m.form.inputs[formFieldEnd].Value())
	activity := strings.TrimSpace(m.form.inputs[formFieldActivity].Value())

	if _, err := utils.ParseHHMM(start); err != nil {
		return models.Entry{}, fmt.Errorf("start: %w", err)
	}
	if _, err := utils.ParseHHMM(end); err != nil {
		return models.Entry{}, fmt.Errorf("end: %w", err)
	}

	start = padHHMM(start)
	end = padHHMM(end)
	if start >= end {
		return models.Entry{}, fmt.Errorf("end time must be after start time")
	}
	if activity == "" {
		return models.Entry{}, fmt.Errorf("activity must not be empty")
	}

	tag := ""
	if m.form.tagIdx > 0 && m.form.tagIdx <= len(m.tags) {
		tag = m.tags[m.form.tagIdx-1].Name
	}

	return models.Entry{
		ID:          m.form.editingID,
		Vessel:      m.form.vessel,
		Date:        m.form.date,
		Start:       start,
		End:         end,
		Activity:    activity,
		Tag:         tag,
		PendingSync: m.form.pending,
	}, nil
}

func padHHMM(v string) string {
	if len(v) >= 4 {
		return v
	}
	return strings.Repeat("0", 4-len(v)) + v
}

func (m mainLoopModel) cmdSaveEntry(entry models.Entry) tea.Cmd {
	ctx := m.ctx
	entriesSvc := m.services.EntryService
	isNew := entry.ID == ""

	return func() tea.Msg {
		conflict, err := entriesSvc.CheckOverlap(ctx, entry, entry.ID)
		if err != nil {
			return entrySavedMsg{err: err}
		}
		if conflict != nil {
			return entrySavedMsg{err: fmt.Errorf("overlaps %s-%s %s",
				utils.FormatTime(conflict.Start), utils.FormatTime(conflict.End), conflict.Activity)}
		}

		var saved models.Entry
		if isNew {
			saved, err = entriesSvc.CreateEntry(ctx, entry)
		} else {
			saved, err = entriesSvc.UpdateEntry(ctx, entry)
		}
		return entrySavedMsg{entry: saved, err: err}
	}
}

func (m *mainLoopModel) formFocusNext() {
	if m.form.focus < len(m.form.inputs) {
		m.form.inputs[m.form.focus].Blur()
	}
	m.form.focus = (m.form.focus + 1) % formFieldCount
	if m.form.focus < len(m.form.inputs) {
		m.form.inputs[m.form.focus].Focus()
	}
}

func (m *mainLoopModel) formFocusPrev() {
	if m.form.focus < len(m.form.inputs) {
		m.form.inputs[m.form.focus].Blur()
	}
	m.form.focus = (m.form.focus - 1 + formFieldCount) % formFieldCount
	if m.form.focus < len(m.form.inputs) {
		m.form.inputs[m.form.focus].Focus()
	}
}

func (m mainLoopModel) viewForm() string {
	var b strings.Builder

	title := "NEW ENTRY"
	if m.form.editingID != "" {
		title = "EDIT ENTRY"
	}

	b.WriteString(fmt.Sprintf("Vessel: %s    Date: %s\n\n", m.form.vessel, utils.FormatDateDisplay(m.form.date)))

	b.WriteString("From (HHMM)  │ [" + m.form.inputs[formFieldStart].View() + "]\n")
	b.WriteString("To (HHMM)    │ [" + m.form.inputs[formFieldEnd].View() + "]\n")
	b.WriteString("Activity     │ [" + m.form.inputs[formFieldActivity].View() + "]\n")

	tagLabel := "(none)"
	if m.form.tagIdx > 0 && m.form.tagIdx <= len(m.tags) {
		tag := m.tags[m.form.tagIdx-1]
		tagLabel = tagStyle(tag.Color).Render(tag.Name)
	}
	marker := " "
	if m.form.focus == formFieldTag {
		marker = ">"
	}
	b.WriteString(fmt.Sprintf("Tag         %s│ ← %s →\n", marker, tagLabel))

	if m.form.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}

	if m.form.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.form.errMsg) + "\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "tab: next field │ ←/→: tag │ enter: save │ esc: cancel")
}
