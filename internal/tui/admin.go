package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ltemarine/shiplog/models"
)

type adminMode int

const (
	adminBrowse adminMode = iota
	adminAdd
	adminEdit
)

type adminList int

const (
	adminVessels adminList = iota
	adminUsers
	adminTags
	adminListCount
)

// adminState is the reference-list management page: three ordered lists with
// add, edit, remove and reorder. Only Admin accounts reach it.
type adminState struct {
	list adminList
	idx  int
	mode adminMode

	editingName string
	inputs      []textinput.Model
	focus       int

	armedName string
	armedAt   time.Time

	saving bool
	errMsg string
}

func (m *mainLoopModel) startAdmin() {
	m.admin = adminState{}
	m.page = pageAdmin
}

func (m mainLoopModel) adminListLen() int {
	switch m.admin.list {
	case adminUsers:
		return len(m.users)
	case adminTags:
		return len(m.tags)
	default:
		return len(m.vessels)
	}
}

func (m mainLoopModel) adminListName() string {
	switch m.admin.list {
	case adminUsers:
		return "Users"
	case adminTags:
		return "Tags"
	default:
		return "Vessels"
	}
}

func (m *mainLoopModel) adminStartInputs(values ...string) {
	var labels []string
	switch m.admin.list {
	case adminUsers:
		labels = []string{"name", "email", "role (Vessel/Office/Admin)"}
	case adminTags:
		labels = []string{"name", "color (#rrggbb)"}
	default:
		labels = []string{"name"}
	}

	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		input := textinput.New()
		input.Placeholder = label
		input.CharLimit = 100
		input.Width = 32
		if i < len(values) {
			input.SetValue(values[i])
		}
		inputs[i] = input
	}
	inputs[0].Focus()

	m.admin.inputs = inputs
	m.admin.focus = 0
}

func (m mainLoopModel) updateAdmin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.admin.mode != adminBrowse && m.admin.focus < len(m.admin.inputs) {
			var cmd tea.Cmd
			m.admin.inputs[m.admin.focus], cmd = m.admin.inputs[m.admin.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.admin.mode != adminBrowse {
		return m.updateAdminEditing(keyMsg)
	}

	key := keyMsg.String()
	if key != "d" {
		m.admin.armedName = ""
	}

	switch key {
	case "esc", "q":
		m.page = pageTimesheet
		m.loading = true
		return m, m.cmdLoadEntries()
	case "tab":
		m.admin.list = (m.admin.list + 1) % adminListCount
		m.admin.idx = 0
	case "up", "k":
		if m.admin.idx > 0 {
			m.admin.idx--
		}
	case "down", "j":
		if m.admin.idx < m.adminListLen()-1 {
			m.admin.idx++
		}
	case "K":
		if m.admin.idx > 0 {
			from := m.admin.idx
			m.admin.idx--
			return m, m.cmdAdminMove(from, from-1)
		}
	case "J":
		if m.admin.idx < m.adminListLen()-1 {
			from := m.admin.idx
			m.admin.idx++
			return m, m.cmdAdminMove(from, from+1)
		}
	case "a":
		m.admin.mode = adminAdd
		m.admin.editingName = ""
		m.adminStartInputs()
		return m, textinput.Blink
	case "e":
		name, values, ok := m.adminCurrent()
		if !ok {
			return m, nil
		}
		m.admin.mode = adminEdit
		m.admin.editingName = name
		m.adminStartInputs(values...)
		return m, textinput.Blink
	case "d":
		name, _, ok := m.adminCurrent()
		if !ok {
			return m, nil
		}
		if m.admin.armedName == name && time.Since(m.admin.armedAt) <= deleteArmWindow {
			m.admin.armedName = ""
			return m, m.cmdAdminRemove(name)
		}
		m.admin.armedName = name
		m.admin.armedAt = time.Now()
	}

	return m, nil
}

func (m mainLoopModel) updateAdminEditing(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.admin.mode = adminBrowse
		m.admin.errMsg = ""
		return m, nil
	case "tab", "down":
		m.adminFocusNext()
		return m, nil
	case "shift+tab", "up":
		m.adminFocusPrev()
		return m, nil
	case "enter":
		if m.admin.saving {
			return m, nil
		}
		m.admin.saving = true
		m.admin.errMsg = ""
		return m, m.cmdAdminSave()
	}

	var cmd tea.Cmd
	m.admin.inputs[m.admin.focus], cmd = m.admin.inputs[m.admin.focus].Update(keyMsg)
	return m, cmd
}

// adminCurrent returns the selected item's name and its editable field values.
func (m mainLoopModel) adminCurrent() (string, []string, bool) {
	idx := m.admin.idx
	switch m.admin.list {
	case adminUsers:
		if idx >= len(m.users) {
			return "", nil, false
		}
		user := m.users[idx]
		return user.Name, []string{user.Name, user.Email, user.Role}, true
	case adminTags:
		if idx >= len(m.tags) {
			return "", nil, false
		}
		tag := m.tags[idx]
		return tag.Name, []string{tag.Name, tag.Color}, true
	default:
		if idx >= len(m.vessels) {
			return "", nil, false
		}
		return m.vessels[idx].Name, []string{m.vessels[idx].Name}, true
	}
}

// --- commands ---

func (m mainLoopModel) cmdAdminSave() tea.Cmd {
	ctx := m.ctx
	lists := m.services.ListService
	kind := m.admin.list
	mode := m.admin.mode
	oldName := m.admin.editingName

	values := make([]string, len(m.admin.inputs))
	for i := range m.admin.inputs {
		values[i] = strings.TrimSpace(m.admin.inputs[i].Value())
	}

	return func() tea.Msg {
		var err error
		switch kind {
		case adminUsers:
			user := models.User{Name: values[0], Email: values[1], Role: values[2]}
			if mode == adminAdd {
				err = lists.AddUser(ctx, user)
			} else {
				err = lists.UpdateUser(ctx, oldName, user)
			}
		case adminTags:
			tag := models.Tag{Name: values[0], Color: values[1]}
			if mode == adminAdd {
				err = lists.AddTag(ctx, tag)
			} else {
				err = lists.UpdateTag(ctx, oldName, tag)
			}
		default:
			if mode == adminAdd {
				err = lists.AddVessel(ctx, values[0])
			} else {
				err = lists.RenameVessel(ctx, oldName, values[0])
			}
		}
		return adminDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdAdminRemove(name string) tea.Cmd {
	ctx := m.ctx
	lists := m.services.ListService
	kind := m.admin.list

	return func() tea.Msg {
		var err error
		switch kind {
		case adminUsers:
			err = lists.RemoveUser(ctx, name)
		case adminTags:
			err = lists.RemoveTag(ctx, name)
		default:
			err = lists.RemoveVessel(ctx, name)
		}
		return adminDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdAdminMove(fromIndex, toIndex int) tea.Cmd {
	ctx := m.ctx
	lists := m.services.ListService
	kind := m.admin.list

	return func() tea.Msg {
		var err error
		switch kind {
		case adminUsers:
			err = lists.MoveUser(ctx, fromIndex, toIndex)
		case adminTags:
			err = lists.MoveTag(ctx, fromIndex, toIndex)
		default:
			err = lists.MoveVessel(ctx, fromIndex, toIndex)
		}
		return adminDoneMsg{err: err}
	}
}

func (m *mainLoopModel) adminFocusNext() {
	m.admin.inputs[m.admin.focus].Blur()
	m.admin.focus = (m.admin.focus + 1) % len(m.admin.inputs)
	m.admin.inputs[m.admin.focus].Focus()
}

func (m *mainLoopModel) adminFocusPrev() {
	m.admin.inputs[m.admin.focus].Blur()
	m.admin.focus = (m.admin.focus - 1 + len(m.admin.inputs)) % len(m.admin.inputs)
	m.admin.inputs[m.admin.focus].Focus()
}

// --- view ---

func (m mainLoopModel) viewAdmin() string {
	if m.admin.mode != adminBrowse {
		return m.viewAdminEditing()
	}

	var b strings.Builder

	for list := adminList(0); list < adminListCount; list++ {
		label := map[adminList]string{adminVessels: "Vessels", adminUsers: "Users", adminTags: "Tags"}[list]
		if list == m.admin.list {
			b.WriteString("[" + label + "] ")
		} else {
			b.WriteString(" " + label + "  ")
		}
	}
	b.WriteString("\n\n")

	switch m.admin.list {
	case adminUsers:
		for i, user := range m.users {
			cursor := " "
			if i == m.admin.idx {
				cursor = ">"
			}
			email := user.Email
			if email == "" {
				email = "-"
			}
			b.WriteString(fmt.Sprintf("%s %-16s %-28s %s\n", cursor, user.Name, email, user.Role))
		}
	case adminTags:
		for i, tag := range m.tags {
			cursor := " "
			if i == m.admin.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, tagStyle(tag.Color).Render(tag.Name), helpStyle.Render(tag.Color)))
		}
	default:
		for i, vessel := range m.vessels {
			cursor := " "
			if i == m.admin.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, vessel.Name))
		}
	}

	if m.adminListLen() == 0 {
		b.WriteString("(empty)\n")
	}

	if m.admin.armedName != "" {
		b.WriteString("\nPress d again to remove " + m.admin.armedName + "\n")
	}
	if m.admin.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.admin.errMsg) + "\n")
	}

	return renderPage("ADMIN — "+strings.ToUpper(m.adminListName()),
		strings.TrimRight(b.String(), "\n"),
		"tab: list │ a: add │ e: edit │ d+d: remove │ K/J: reorder │ esc: back")
}

func (m mainLoopModel) viewAdminEditing() string {
	var b strings.Builder

	action := "Add"
	if m.admin.mode == adminEdit {
		action = "Edit"
	}
	b.WriteString(action + " " + strings.ToLower(m.adminListName()) + " item\n\n")

	for i := range m.admin.inputs {
		marker := " "
		if i == m.admin.focus {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s [%s]\n", marker, m.admin.inputs[i].View()))
	}

	if m.admin.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}

	if m.admin.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.admin.errMsg) + "\n")
	}

	return renderPage("ADMIN — "+strings.ToUpper(m.adminListName()),
		strings.TrimRight(b.String(), "\n"),
		"tab: next field │ enter: save │ esc: cancel")
}
