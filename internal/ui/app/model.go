package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "unitrack/internal/modules/account/dto"
	editordto "unitrack/internal/modules/editor/dto"
	exportdto "unitrack/internal/modules/export/dto"
	trackerdto "unitrack/internal/modules/tracker/dto"
	apperrors "unitrack/internal/platform/errors"
	"unitrack/internal/ui/components"
	"unitrack/internal/ui/theme"
	applicationsview "unitrack/internal/ui/views/applications"
	authview "unitrack/internal/ui/views/auth"
	dashboardview "unitrack/internal/ui/views/dashboard"
	editorview "unitrack/internal/ui/views/editor"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type accountPort interface {
	SignUp(ctx context.Context, name, email, password string) (accountdto.SessionOutput, error)
	SignIn(ctx context.Context, email, password string) (accountdto.SessionOutput, error)
	SignOut(ctx context.Context) (accountdto.SessionOutput, error)
	Current(ctx context.Context) (accountdto.SessionOutput, error)
}

type trackerPort interface {
	List(ctx context.Context) ([]trackerdto.Record, error)
	Stats(ctx context.Context) (trackerdto.StatsOutput, error)
	Remove(ctx context.Context, id string) error
}

type editorPort interface {
	StartCreate(ctx context.Context) (editordto.Draft, error)
	StartEdit(ctx context.Context, recordID string) (editordto.Draft, error)
	AddItem(draft editordto.Draft, name string) editordto.Draft
	RenameItem(draft editordto.Draft, oldName, newName string) editordto.Draft
	RemoveItem(draft editordto.Draft, name string) editordto.Draft
	ToggleItem(draft editordto.Draft, name string) editordto.Draft
	Commit(ctx context.Context, draft editordto.Draft) (editordto.CommitOutput, error)
}

type exportPort interface {
	Doctor(ctx context.Context) ([]exportdto.DoctorResult, error)
	Export(ctx context.Context, pluginName, formatID string) (exportdto.ExportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabApplications
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Applications"}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionLoadedMsg struct {
	session accountdto.SessionOutput
	err     error
}

type authResultMsg struct {
	session accountdto.SessionOutput
	err     error
}

type signedOutMsg struct{ err error }

type draftReadyMsg struct {
	draft editordto.Draft
	err   error
}

type commitDoneMsg struct {
	out editordto.CommitOutput
	err error
}

type recordRemovedMsg struct{ err error }

type exportDoneMsg struct {
	out  exportdto.ExportOutput
	path string
	err  error
}

type doctorDoneMsg struct {
	results []exportdto.DoctorResult
	err     error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new application")),
		Edit:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete (press twice)")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.New, k.Edit, k.Delete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Until a session is authenticated it
// shows only the auth view; afterwards it owns tab routing, the editor
// overlay, the help overlay, and the command palette. Business logic is
// delegated to port interfaces.
type Model struct {
	account accountPort
	tracker trackerPort
	editor  editorPort
	export  exportPort

	authView  authview.Model
	dashView  dashboardview.Model
	appsView  applicationsview.Model
	editView  editorview.Model
	checking  bool
	authed    bool
	session   accountdto.SessionOutput
	editOpen  bool
	activeTab tabID

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(account accountPort, tracker trackerPort, editor editorPort, export exportPort) Model {
	return Model{
		account:   account,
		tracker:   tracker,
		editor:    editor,
		export:    export,
		authView:  authview.New(),
		dashView:  dashboardview.New(trackerPortBridge{p: tracker}),
		appsView:  applicationsview.New(trackerPortBridge{p: tracker}),
		editView:  editorview.New(editorPortBridge{p: editor}),
		checking:  true,
		activeTab: tabDashboard,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.authView.Init(), m.loadSessionCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.palette.SetWidth(minInt(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
	}

	// Session restore happens before anything is interactive.
	if loaded, ok := msg.(sessionLoadedMsg); ok {
		m.checking = false
		if loaded.err != nil {
			m.status = "session check: " + loaded.err.Error()
			return m, nil
		}
		if loaded.session.Authenticated {
			return m.enterMain(loaded.session)
		}
		return m, nil
	}

	if !m.authed {
		return m.updateAuth(msg)
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	if m.editOpen {
		return m.updateEditor(msg)
	}

	switch msg := msg.(type) {
	case signedOutMsg:
		if msg.err != nil {
			m.status = "sign out failed: " + msg.err.Error()
			return m, nil
		}
		m.authed = false
		m.session = accountdto.SessionOutput{}
		m.authView = authview.New()
		m.status = "signed out"
		return m, m.authView.Init()

	case draftReadyMsg:
		if msg.err != nil {
			m.status = "editor: " + msg.err.Error()
			return m, nil
		}
		m.editOpen = true
		return m, m.editView.Open(msg.draft)

	case commitDoneMsg:
		// Reached only from palette status changes; saves from the editor
		// overlay are handled in updateEditor.
		if msg.err != nil {
			m.status = "update failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("updated %s — %s", msg.out.University, msg.out.Course)
		return m, m.refreshCmd()

	case recordRemovedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "application deleted"
		return m, m.refreshCmd()

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("exported to %s", msg.path)
		return m, nil

	case doctorDoneMsg:
		if msg.err != nil {
			m.status = "plugin doctor: " + msg.err.Error()
			return m, nil
		}
		healthy := 0
		for _, r := range msg.results {
			if r.LifecycleOK {
				healthy++
			}
		}
		m.status = fmt.Sprintf("plugin doctor: %d/%d healthy", healthy, len(msg.results))
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case applicationsview.NewRequestedMsg:
		return m, m.startCreateCmd()

	case applicationsview.EditRequestedMsg:
		return m, m.startEditCmd(msg.ID)

	case applicationsview.DeleteRequestedMsg:
		return m, m.removeCmd(msg.ID)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabApplications && m.appsView.Filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			return m, m.palette.Open()
		case "n":
			if m.activeTab == tabDashboard {
				return m, m.startCreateCmd()
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabApplications:
		m.appsView, tabCmd = m.appsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authview.SubmitMsg:
		m.authView.SetPending(true)
		return m, m.authCmd(msg)

	case authResultMsg:
		if msg.err != nil {
			m.authView.SetError(authErrText(msg.err))
			return m, nil
		}
		return m.enterMain(msg.session)
	}

	var cmd tea.Cmd
	m.authView, cmd = m.authView.Update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorview.CancelMsg:
		m.editOpen = false
		m.status = "draft discarded"
		return m, nil

	case editorview.SaveRequestedMsg:
		return m, m.commitCmd(msg.Draft)

	case commitDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrValidationFailed) {
				m.editView.SetError("university and course are required")
			} else {
				m.editView.SetError(msg.err.Error())
			}
			return m, nil
		}
		m.editOpen = false
		m.status = fmt.Sprintf("saved %s — %s", msg.out.University, msg.out.Course)
		return m, m.refreshCmd()
	}

	var cmd tea.Cmd
	m.editView, cmd = m.editView.Update(msg)
	return m, cmd
}

// enterMain switches from the auth gate to the main tabs and loads the
// signed-in account's data.
func (m Model) enterMain(session accountdto.SessionOutput) (tea.Model, tea.Cmd) {
	m.authed = true
	m.session = session
	m.activeTab = tabDashboard
	m.status = "welcome, " + session.Name
	return m, m.refreshCmd()
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.checking {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Loading session…"))
	}
	if !m.authed {
		return m.authView.View()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.editOpen:
		content = m.editView.View()
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabDashboard:
		content = m.dashView.View()
	default:
		content = m.appsView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "unitrack  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Hot.Render("● "+m.session.Email) + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "app:new":
		return m, m.startCreateCmd()

	case "app:edit":
		if id, ok := m.appsView.SelectedID(); ok {
			return m, m.startEditCmd(id)
		}
		m.status = "no application selected"
		return m, nil

	case "app:delete":
		m.activeTab = tabApplications
		m.status = "press d twice on the selected application"
		return m, nil

	case "status:set":
		if len(parts) < 2 {
			m.status = "usage: status:set <status>"
			return m, nil
		}
		status, ok := matchStatus(parts[1])
		if !ok {
			m.status = "unknown status: " + parts[1]
			return m, nil
		}
		id, ok := m.appsView.SelectedID()
		if !ok {
			m.status = "no application selected"
			return m, nil
		}
		return m, m.setStatusCmd(id, status)

	case "stats:refresh":
		m.status = "refreshed"
		return m, m.refreshCmd()

	case "export:run":
		if len(parts) < 3 {
			m.status = "usage: export:run <plugin> <format>"
			return m, nil
		}
		m.status = "exporting…"
		return m, m.exportCmd(parts[1], parts[2])

	case "plugin:doctor":
		m.status = "running plugin doctor…"
		return m, m.doctorCmd()

	case "session:signout":
		return m, m.signOutCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.authView, _ = m.authView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.dashView, _ = m.dashView.Update(sz)
	m.appsView, _ = m.appsView.Update(sz)
	m.editView, _ = m.editView.Update(sz)
}

// matchStatus resolves a palette argument case-insensitively against the
// known stages.
func matchStatus(arg string) (string, bool) {
	for _, status := range trackerdto.Statuses() {
		if strings.EqualFold(status, arg) {
			return status, true
		}
	}
	return "", false
}

func authErrText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return "an account with this email already exists"
	case errors.Is(err, apperrors.ErrInvalidInput):
		return "name, email and password are required"
	case errors.Is(err, apperrors.ErrSignInPending):
		return "an attempt is already in flight"
	default:
		return err.Error()
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.account.Current(context.Background())
		return sessionLoadedMsg{session: session, err: err}
	}
}

func (m Model) authCmd(submit authview.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var (
			session accountdto.SessionOutput
			err     error
		)
		if submit.SignUp {
			session, err = m.account.SignUp(context.Background(), submit.Name, submit.Email, submit.Password)
		} else {
			session, err = m.account.SignIn(context.Background(), submit.Email, submit.Password)
		}
		return authResultMsg{session: session, err: err}
	}
}

func (m Model) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.account.SignOut(context.Background())
		return signedOutMsg{err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.dashView.Refresh(), m.appsView.Refresh())
}

func (m Model) startCreateCmd() tea.Cmd {
	return func() tea.Msg {
		draft, err := m.editor.StartCreate(context.Background())
		return draftReadyMsg{draft: draft, err: err}
	}
}

func (m Model) startEditCmd(id string) tea.Cmd {
	return func() tea.Msg {
		draft, err := m.editor.StartEdit(context.Background(), id)
		return draftReadyMsg{draft: draft, err: err}
	}
}

func (m Model) commitCmd(draft editordto.Draft) tea.Cmd {
	return func() tea.Msg {
		out, err := m.editor.Commit(context.Background(), draft)
		return commitDoneMsg{out: out, err: err}
	}
}

func (m Model) setStatusCmd(id, status string) tea.Cmd {
	return func() tea.Msg {
		draft, err := m.editor.StartEdit(context.Background(), id)
		if err != nil {
			return commitDoneMsg{err: err}
		}
		draft.Status = status
		out, err := m.editor.Commit(context.Background(), draft)
		return commitDoneMsg{out: out, err: err}
	}
}

func (m Model) removeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return recordRemovedMsg{err: m.tracker.Remove(context.Background(), id)}
	}
}

func (m Model) exportCmd(pluginName, formatID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.export.Export(context.Background(), pluginName, formatID)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		cwd, err := os.Getwd()
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path := filepath.Join(cwd, out.Filename)
		if err := os.WriteFile(path, []byte(out.Payload), 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{out: out, path: path}
	}
}

func (m Model) doctorCmd() tea.Cmd {
	return func() tea.Msg {
		results, err := m.export.Doctor(context.Background())
		return doctorDoneMsg{results: results, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed
// by a specific sub-view.

type trackerPortBridge struct{ p trackerPort }

func (b trackerPortBridge) List(ctx context.Context) ([]trackerdto.Record, error) {
	return b.p.List(ctx)
}
func (b trackerPortBridge) Stats(ctx context.Context) (trackerdto.StatsOutput, error) {
	return b.p.Stats(ctx)
}

type editorPortBridge struct{ p editorPort }

func (b editorPortBridge) AddItem(draft editordto.Draft, name string) editordto.Draft {
	return b.p.AddItem(draft, name)
}
func (b editorPortBridge) RenameItem(draft editordto.Draft, oldName, newName string) editordto.Draft {
	return b.p.RenameItem(draft, oldName, newName)
}
func (b editorPortBridge) RemoveItem(draft editordto.Draft, name string) editordto.Draft {
	return b.p.RemoveItem(draft, name)
}
func (b editorPortBridge) ToggleItem(draft editordto.Draft, name string) editordto.Draft {
	return b.p.ToggleItem(draft, name)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
