package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ltemarine/shiplog/internal/metocean"
	"github.com/ltemarine/shiplog/internal/service"
	"github.com/ltemarine/shiplog/internal/utils"
	"github.com/ltemarine/shiplog/models"
)

type uiPage int

const (
	pageTimesheet uiPage = iota
	pageForm
	pageDashboard
	pageTides
	pageWeather
	pageAdmin
)

// deleteArmWindow is how long the second press of "d" stays armed.
const deleteArmWindow = 3 * time.Second

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	weather  *metocean.WeatherClient
	session  models.Session

	page uiPage

	vessels   []models.Vessel
	tags      []models.Tag
	users     []models.User
	vesselIdx int

	dateOffset int

	entries []models.Entry
	idx     int
	loading bool
	status  string
	errMsg  string

	deleteArmedID string
	deleteArmedAt time.Time

	form      formState
	dashboard service.DaySummary
	admin     adminState

	tides        []metocean.Tide
	tideLocation string

	forecast       metocean.Forecast
	weatherLoading bool
	weatherErr     string

	logout bool
}

type refsLoadedMsg struct {
	vessels []models.Vessel
	tags    []models.Tag
	users   []models.User
	err     error
}

type entriesLoadedMsg struct {
	entries []models.Entry
	err     error
}

type entrySavedMsg struct {
	entry models.Entry
	err   error
}

type entryDeletedMsg struct {
	err error
}

type summaryLoadedMsg struct {
	summary service.DaySummary
	err     error
}

type forecastLoadedMsg struct {
	forecast metocean.Forecast
	err      error
}

type adminDoneMsg struct {
	err error
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, weather *metocean.WeatherClient, session models.Session) mainLoopModel {
	return mainLoopModel{
		ctx:          ctx,
		services:     services,
		weather:      weather,
		session:      session,
		loading:      true,
		tideLocation: "Conakry",
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadRefs()
}

// vessel returns the currently selected vessel name. Crew accounts are
// pinned to the vessel matching their user name.
func (m mainLoopModel) vessel() string {
	if m.session.User.Role == models.RoleVessel {
		return m.session.User.Name
	}
	if len(m.vessels) == 0 {
		return ""
	}
	return m.vessels[m.vesselIdx%len(m.vessels)].Name
}

func (m mainLoopModel) date() string {
	return utils.DateStr(m.dateOffset)
}

func (m mainLoopModel) canSwitchVessel() bool {
	return m.session.User.Role != models.RoleVessel && len(m.vessels) > 1
}

func (m mainLoopModel) isAdmin() bool {
	return m.session.User.Role == models.RoleAdmin
}

func (m mainLoopModel) current() (models.Entry, bool) {
	if m.idx < 0 || m.idx >= len(m.entries) {
		return models.Entry{}, false
	}
	return m.entries[m.idx], true
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refsLoadedMsg:
		if msg.err != nil {
			m.loading = false
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.vessels = msg.vessels
		m.tags = msg.tags
		m.users = msg.users
		return m, m.cmdLoadEntries()
	case entriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.entries = msg.entries
		if m.idx >= len(m.entries) {
			m.idx = len(m.entries) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case entrySavedMsg:
		m.form.saving = false
		if msg.err != nil {
			// The entry may still have been kept locally as pending.
			if msg.entry.PendingSync {
				m.page = pageTimesheet
				m.status = "Saved locally, will sync when the base is reachable"
				m.errMsg = ""
				m.loading = true
				return m, m.cmdLoadEntries()
			}
			m.form.errMsg = msg.err.Error()
			return m, nil
		}
		m.page = pageTimesheet
		m.status = "Entry saved"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadEntries()
	case entryDeletedMsg:
		if msg.err != nil {
			m.status = "Removed here; the base still holds it"
		} else {
			m.status = "Entry deleted"
		}
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadEntries()
	case summaryLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.page = pageTimesheet
			return m, nil
		}
		m.dashboard = msg.summary
		return m, nil
	case forecastLoadedMsg:
		m.weatherLoading = false
		if msg.err != nil {
			m.weatherErr = msg.err.Error()
			return m, nil
		}
		m.weatherErr = ""
		m.forecast = msg.forecast
		return m, nil
	case adminDoneMsg:
		m.admin.saving = false
		if msg.err != nil {
			m.admin.errMsg = msg.err.Error()
			return m, nil
		}
		m.admin.errMsg = ""
		m.admin.mode = adminBrowse
		return m, m.cmdLoadRefs()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		switch m.page {
		case pageForm:
			return m.updateForm(msg)
		case pageAdmin:
			return m.updateAdmin(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.page {
	case pageForm:
		return m.updateForm(msg)
	case pageAdmin:
		return m.updateAdmin(msg)
	case pageDashboard, pageTides, pageWeather:
		switch keyMsg.String() {
		case "esc", "q":
			m.page = pageTimesheet
			return m, nil
		}
		if m.page == pageTides && keyMsg.String() == "l" {
			m.toggleTideLocation()
			return m, nil
		}
		return m, nil
	}

	return m.updateTimesheet(keyMsg)
}

func (m mainLoopModel) updateTimesheet(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := keyMsg.String()

	// Any key other than a second "d" disarms a pending delete.
	if key != "d" {
		m.deleteArmedID = ""
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.entries)-1 {
			m.idx++
		}
	case "left", "h":
		m.dateOffset--
		m.loading = true
		return m, m.cmdLoadEntries()
	case "right", "l":
		m.dateOffset++
		m.loading = true
		return m, m.cmdLoadEntries()
	case "v":
		if !m.canSwitchVessel() {
			return m, nil
		}
		m.vesselIdx = (m.vesselIdx + 1) % len(m.vessels)
		m.loading = true
		return m, m.cmdLoadEntries()
	case "V":
		if !m.canSwitchVessel() {
			return m, nil
		}
		m.vesselIdx = (m.vesselIdx - 1 + len(m.vessels)) % len(m.vessels)
		m.loading = true
		return m, m.cmdLoadEntries()
	case "r":
		m.loading = true
		m.status = ""
		return m, m.cmdLoadEntries()
	case "a":
		m.startForm(models.Entry{Vessel: m.vessel(), Date: m.date()})
		return m, m.form.initCmd()
	case "e":
		entry, ok := m.current()
		if !ok {
			m.status = "No entries"
			return m, nil
		}
		m.startForm(entry)
		return m, m.form.initCmd()
	case "d":
		entry, ok := m.current()
		if !ok {
			m.status = "No entries"
			return m, nil
		}
		if m.deleteArmedID == entry.ID && time.Since(m.deleteArmedAt) <= deleteArmWindow {
			m.deleteArmedID = ""
			return m, m.cmdDelete(entry.ID)
		}
		m.deleteArmedID = entry.ID
		m.deleteArmedAt = time.Now()
		m.status = "Press d again to delete"
	case "y":
		if err := clipboard.WriteAll(m.dayAsText()); err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", err)
			return m, nil
		}
		m.status = "Day copied to clipboard"
	case "g":
		m.page = pageDashboard
		m.dashboard = service.DaySummary{}
		return m, m.cmdLoadSummary()
	case "t":
		m.page = pageTides
		m.loadTides()
		return m, nil
	case "w":
		m.page = pageWeather
		m.weatherLoading = true
		m.weatherErr = ""
		return m, m.cmdLoadForecast()
	case "m":
		if !m.isAdmin() {
			return m, nil
		}
		m.startAdmin()
		return m, nil
	case "x":
		m.errMsg = ""
		m.status = ""
	case "L":
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *mainLoopModel) toggleTideLocation() {
	if m.tideLocation == "Conakry" {
		m.tideLocation = "Kamsar"
	} else {
		m.tideLocation = "Conakry"
	}
	m.loadTides()
}

func (m *mainLoopModel) loadTides() {
	if m.tideLocation == "Conakry" {
		if parsed := metocean.ConakryTides(); len(parsed) > 0 {
			m.tides = parsed
			return
		}
	}
	m.tides = metocean.SimulatedTides(m.tideLocation, 7)
}

func (m mainLoopModel) dayAsText() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s — %s\n", m.vessel(), utils.FormatDateDisplay(m.date())))
	for _, entry := range m.entries {
		b.WriteString(fmt.Sprintf("%s-%s  %s", utils.FormatTime(entry.Start), utils.FormatTime(entry.End), entry.Activity))
		if entry.Tag != "" {
			b.WriteString(" [" + entry.Tag + "]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// --- commands ---

func (m mainLoopModel) cmdLoadRefs() tea.Cmd {
	ctx := m.ctx
	lists := m.services.ListService

	return func() tea.Msg {
		vessels, err := lists.Vessels(ctx)
		if err != nil {
			return refsLoadedMsg{err: err}
		}
		tags, err := lists.Tags(ctx)
		if err != nil {
			return refsLoadedMsg{err: err}
		}
		users, err := lists.Users(ctx)
		if err != nil {
			return refsLoadedMsg{err: err}
		}
		return refsLoadedMsg{vessels: vessels, tags: tags, users: users}
	}
}

func (m mainLoopModel) cmdLoadEntries() tea.Cmd {
	ctx := m.ctx
	entriesSvc := m.services.EntryService
	vessel, date := m.vessel(), m.date()

	return func() tea.Msg {
		entries, err := entriesSvc.EntriesForDate(ctx, vessel, date)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m mainLoopModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	entriesSvc := m.services.EntryService

	return func() tea.Msg {
		return entryDeletedMsg{err: entriesSvc.DeleteEntry(ctx, id)}
	}
}

func (m mainLoopModel) cmdLoadSummary() tea.Cmd {
	ctx := m.ctx
	dashboard := m.services.DashboardService
	vessel, date := m.vessel(), m.date()

	return func() tea.Msg {
		summary, err := dashboard.Summary(ctx, vessel, date)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func (m mainLoopModel) cmdLoadForecast() tea.Cmd {
	ctx := m.ctx
	weather := m.weather

	return func() tea.Msg {
		forecast, err := weather.Fetch(ctx)
		return forecastLoadedMsg{forecast: forecast, err: err}
	}
}

// --- view ---

func (m mainLoopModel) View() string {
	switch m.page {
	case pageForm:
		return m.viewForm()
	case pageDashboard:
		return m.viewDashboard()
	case pageTides:
		return m.viewTides()
	case pageWeather:
		return m.viewWeather()
	case pageAdmin:
		return m.viewAdmin()
	}
	return m.viewTimesheet()
}

func (m mainLoopModel) viewTimesheet() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Vessel: %s    Date: %s\n\n", m.vessel(), utils.FormatDateDisplay(m.date())))

	if m.loading {
		b.WriteString("Loading...\n")
	} else if len(m.entries) == 0 {
		b.WriteString("No entries for this day.\n")
	} else {
		total := 0
		for i, entry := range m.entries {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}

			line := fmt.Sprintf("%s %s-%s  %-8s  %s",
				cursor,
				utils.FormatTime(entry.Start),
				utils.FormatTime(entry.End),
				utils.FormatDuration(utils.CalcDuration(entry.Start, entry.End)),
				fitText(entry.Activity, 34),
			)
			if entry.Tag != "" {
				line += "  " + tagStyle(m.tagColor(entry.Tag)).Render("["+entry.Tag+"]")
			}
			if entry.PendingSync {
				line += "  " + pendingStyle.Render("(pending)")
			}
			b.WriteString(line)
			b.WriteString("\n")
			total += utils.CalcDuration(entry.Start, entry.End)
		}
		b.WriteString(fmt.Sprintf("\nTotal: %s in %d entries\n", utils.FormatDuration(total), len(m.entries)))
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + " " + helpStyle.Render("(x: dismiss)") + "\n")
	}

	help := "a: add │ e: edit │ d+d: delete │ ←/→: day │ y: copy │ g: totals │ t: tides │ w: weather"
	if m.canSwitchVessel() {
		help += " │ v: vessel"
	}
	if m.isAdmin() {
		help += " │ m: admin"
	}
	help += " │ L: logout"

	return renderPage("TIMESHEET", strings.TrimRight(b.String(), "\n"), help)
}

func (m mainLoopModel) tagColor(name string) string {
	for _, tag := range m.tags {
		if tag.Name == name {
			return tag.Color
		}
	}
	return models.DefaultTagColor
}

func (m mainLoopModel) viewDashboard() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Vessel: %s    Date: %s\n\n", m.dashboard.Vessel, utils.FormatDateDisplay(m.dashboard.Date)))
	b.WriteString(fmt.Sprintf("Entries: %d\n", m.dashboard.EntryCount))
	b.WriteString(fmt.Sprintf("Logged:  %s\n", utils.FormatDuration(m.dashboard.TotalMinutes)))

	if len(m.dashboard.TagMinutes) > 0 {
		b.WriteString("\nBy tag:\n")
		for _, tag := range m.tags {
			minutes, ok := m.dashboard.TagMinutes[tag.Name]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("  %-14s %s\n", tag.Name, utils.FormatDuration(minutes)))
		}
		if minutes, ok := m.dashboard.TagMinutes[""]; ok {
			b.WriteString(fmt.Sprintf("  %-14s %s\n", "(untagged)", utils.FormatDuration(minutes)))
		}
	}

	return renderPage("DAY TOTALS", strings.TrimRight(b.String(), "\n"), "esc: back")
}

func (m mainLoopModel) viewTides() string {
	var b strings.Builder

	b.WriteString("Location: " + m.tideLocation + "\n\n")

	lastDate := ""
	for _, tide := range m.tides {
		if tide.Date != lastDate {
			if lastDate != "" {
				b.WriteString("\n")
			}
			b.WriteString(tide.Date + "\n")
			lastDate = tide.Date
		}
		b.WriteString(fmt.Sprintf("  %-9s  %8s  %.2f m\n", tide.Type, tide.Time, tide.Height))
	}
	if len(m.tides) == 0 {
		b.WriteString("No tide data.\n")
	}

	return renderPage("TIDES", strings.TrimRight(b.String(), "\n"), "l: switch location │ esc: back")
}

func (m mainLoopModel) viewWeather() string {
	var b strings.Builder

	if m.weatherLoading {
		b.WriteString("Fetching marine forecast...\n")
	} else if m.weatherErr != "" {
		b.WriteString(errorStyle.Render("Error: "+m.weatherErr) + "\n")
	} else {
		b.WriteString("Sea state (next 24h):\n")
		for i, point := range m.forecast.SeaState {
			if i%3 != 0 {
				continue
			}
			label := point.Time
			if len(label) >= 16 {
				label = label[11:16]
			}
			b.WriteString(fmt.Sprintf("  %s  wave %.1f m  swell %.1f m  wind %.0f kn\n",
				label, point.WaveHeight, point.SwellWave, point.WindSpeed))
		}

		if len(m.forecast.Wind) > 0 {
			b.WriteString("\nMax wind (7 days):\n")
			for _, day := range m.forecast.Wind {
				b.WriteString(fmt.Sprintf("  %s  %.0f kn\n", day.Date, day.MaxSpeed))
			}
		}
	}

	return renderPage("MARINE WEATHER", strings.TrimRight(b.String(), "\n"), "esc: back")
}
