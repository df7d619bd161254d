// Package tui provides the interactive Bubble Tea dashboard for moneytrack.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moneytrack/internal/api"
	"moneytrack/internal/auth"
	"moneytrack/internal/finance"
	"moneytrack/internal/tui/components"
	"moneytrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Options carries the display settings the dashboard needs from config.
type Options struct {
	PageSize int
	Timeout  time.Duration
}

// DataMsg is sent when a financial data fetch completes.
type DataMsg struct {
	Data *finance.FinancialData
	Err  error
}

// LoginMsg is sent when a login attempt completes.
type LoginMsg struct {
	Err error
}

// TxResultMsg reports the server's verdict on an optimistically added
// transaction, identified by its local ID.
type TxResultMsg struct {
	LocalID string
	Err     error
}

// App is the root Bubble Tea model.
type App struct {
	client *api.Client
	store  *auth.Store
	opts   Options

	// Working set, rebuilt on every fetch
	ledger  *finance.Ledger
	periods []finance.Period
	source  string
	loaded  bool
	loadErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	fetching  bool

	// Transactions tab
	txPage int

	// History tab
	histCursor int

	// Login form (shown when no session, or after a dead session).
	// Form values live behind pointers so huh's writes survive the model
	// being copied between updates.
	loginForm *huh.Form
	loginVals *loginValues
	needLogin bool
	loginBusy bool
	loginErr  error

	// Add-transaction form
	addForm *huh.Form
	addVals *addTxValues
	addErr  error

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates the dashboard model.
func NewApp(client *api.Client, store *auth.Store, opts Options) App {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	_, haveSession := store.Get()

	a := App{
		client:    client,
		store:     store,
		opts:      opts,
		needLogin: !haveSession,
		fetching:  haveSession,
		txPage:    1,
		spinner:   sp,
	}
	if a.needLogin {
		a.loginVals = &loginValues{}
		a.loginForm = newLoginForm(a.loginVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needLogin && a.loginForm != nil {
		return a.loginForm.Init()
	}
	return tea.Batch(a.fetchCmd(), a.spinner.Tick)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.loginForm != nil {
			a.loginForm = a.loginForm.WithWidth(msg.Width)
		}
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(msg.Width)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case DataMsg:
		a.fetching = false
		if msg.Err != nil {
			// A dead session flips back to the login form; anything else
			// is shown as a fetch error with the last data kept.
			if errors.Is(msg.Err, api.ErrUnauthorized) || errors.Is(msg.Err, auth.ErrSessionInvalid) {
				a.needLogin = true
				a.loginErr = msg.Err
				a.loginVals = &loginValues{}
				a.loginForm = newLoginForm(a.loginVals)
				var cmd tea.Cmd = a.loginForm.Init()
				if a.width > 0 {
					a.loginForm = a.loginForm.WithWidth(a.width)
				}
				return a, cmd
			}
			a.loadErr = msg.Err
			return a, nil
		}
		a.ledger = finance.NewLedger(msg.Data)
		a.periods = finance.SummarizePeriods(msg.Data.PreviousTransactions)
		a.source = "live"
		a.loaded = true
		a.loadErr = nil
		a.txPage = 1
		if a.histCursor >= len(a.periods) {
			a.histCursor = 0
		}
		return a, nil

	case LoginMsg:
		a.loginBusy = false
		if msg.Err != nil {
			// Re-open the form with the error shown above it.
			a.loginErr = msg.Err
			a.loginVals.password = ""
			a.loginForm = newLoginForm(a.loginVals)
			var cmd tea.Cmd = a.loginForm.Init()
			if a.width > 0 {
				a.loginForm = a.loginForm.WithWidth(a.width)
			}
			return a, cmd
		}
		a.needLogin = false
		a.loginErr = nil
		a.loginForm = nil
		a.fetching = true
		return a, tea.Batch(a.fetchCmd(), a.spinner.Tick)

	case TxResultMsg:
		if a.ledger == nil {
			return a, nil
		}
		if msg.Err != nil {
			a.ledger.Fail(msg.LocalID)
			a.addErr = msg.Err
		} else {
			a.ledger.Confirm(msg.LocalID)
		}
		return a, nil

	case spinner.TickMsg:
		if a.fetching || a.loginBusy || !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to whichever form is active (cursor
	// blinks and the like).
	if a.needLogin && a.loginForm != nil {
		return a.updateLoginForm(msg)
	}
	if a.addForm != nil {
		return a.updateAddForm(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Active forms intercept all keys.
	if a.needLogin && a.loginForm != nil {
		return a.updateLoginForm(msg)
	}
	if a.addForm != nil {
		if key == "esc" {
			a.addForm = nil
			return a, nil
		}
		return a.updateAddForm(msg)
	}

	if !a.loaded {
		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if a.loadErr != nil && !a.fetching {
				a.loadErr = nil
				a.fetching = true
				return a, tea.Batch(a.fetchCmd(), a.spinner.Tick)
			}
		}
		return a, nil
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "r":
		if !a.fetching {
			a.fetching = true
			return a, tea.Batch(a.fetchCmd(), a.spinner.Tick)
		}
		return a, nil

	case "a":
		a.addErr = nil
		a.addVals = newAddTxValues()
		a.addForm = newAddTxForm(a.addVals)
		var cmd tea.Cmd = a.addForm.Init()
		if a.width > 0 {
			a.addForm = a.addForm.WithWidth(a.width)
		}
		return a, cmd

	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	// Per-tab navigation
	switch a.activeTab {
	case 1: // Transactions
		switch key {
		case "n", "]":
			if a.txPage < a.txTotalPages() {
				a.txPage++
			}
		case "p", "[":
			if a.txPage > 1 {
				a.txPage--
			}
		}
	case 3: // History
		switch key {
		case "j", "down":
			if a.histCursor < len(a.periods)-1 {
				a.histCursor++
			}
		case "k", "up":
			if a.histCursor > 0 {
				a.histCursor--
			}
		}
	}

	return a, nil
}

func (a App) updateLoginForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.loginForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.loginForm = f
	}

	if a.loginForm.State == huh.StateCompleted {
		a.loginBusy = true
		a.loginForm = nil
		return a, tea.Batch(a.loginCmd(), a.spinner.Tick)
	}

	if a.loginForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	if a.addForm.State == huh.StateCompleted {
		a.addForm = nil
		tx, err := a.addVals.transaction()
		if err != nil {
			a.addErr = err
			return a, nil
		}
		// Optimistic: apply locally first, reconcile on the server reply.
		a.ledger.Add(tx)
		return a, a.createTxCmd(tx)
	}

	if a.addForm.State == huh.StateAborted {
		a.addForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) txTotalPages() int {
	if a.ledger == nil {
		return 1
	}
	_, total := finance.Paginate(
		finance.SortByDateDesc(a.ledger.Transactions()), 1, a.opts.PageSize)
	return total
}

// ─── Commands ───────────────────────────────────────────────────

func (a App) fetchCmd() tea.Cmd {
	client := a.client
	timeout := a.opts.Timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		data, err := client.FinancialData(ctx)
		return DataMsg{Data: data, Err: err}
	}
}

func (a App) loginCmd() tea.Cmd {
	client := a.client
	username := a.loginVals.username
	password := a.loginVals.password
	return func() tea.Msg {
		_, err := client.Login(context.Background(), username, password)
		return LoginMsg{Err: err}
	}
}

func (a App) createTxCmd(tx finance.Transaction) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		err := client.CreateTransaction(context.Background(), tx)
		return TxResultMsg{LocalID: tx.LocalID, Err: err}
	}
}

// ─── Views ──────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return fmt.Sprintf(
			"\n  Terminal too narrow (%d cols)\n\n  moneytrack needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}

	if a.needLogin {
		return a.viewLogin()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.addForm != nil {
		return a.viewAddForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewLogin() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  ◈ moneytrack"))
	b.WriteString("\n\n")

	if a.loginErr != nil {
		b.WriteString(errStyle.Render("  " + loginErrLabel(a.loginErr)))
		b.WriteString("\n\n")
	}

	if a.loginBusy {
		b.WriteString("  " + a.spinner.View() + " Signing in...\n")
		return b.String()
	}

	if a.loginForm != nil {
		b.WriteString(a.loginForm.View())
	}
	return b.String()
}

// loginErrLabel flattens a login failure into one line for the form header.
func loginErrLabel(err error) string {
	var srvErr *api.ServerError
	if errors.As(err, &srvErr) && srvErr.Status == 401 {
		return "Wrong username or password."
	}
	if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, auth.ErrSessionInvalid) {
		return "Session expired. Sign in again."
	}
	return "Login failed: " + err.Error()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var body string
	if a.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		body = titleStyle.Render("◈ moneytrack") + "\n\n" +
			errStyle.Render("Could not load your data") + "\n" +
			subStyle.Render(a.loadErr.Error()) + "\n\n" +
			subStyle.Render("[r]etry  [q]uit")
	} else {
		body = titleStyle.Render("◈ moneytrack") + "\n\n" +
			a.spinner.View() + subStyle.Render(" Fetching your finances...")
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body))
}

func (a App) viewAddForm() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  New transaction"))
	b.WriteString("\n\n")
	b.WriteString(a.addForm.View())
	return b.String()
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"o t b h", "Jump to tab"},
		{"← →", "Previous / next tab"},
		{"n p", "Next / previous page"},
		{"j k", "Navigate history"},
		{"a", "Add a transaction"},
		{"r", "Refresh from server"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab) + "\n"
	statusBar := components.RenderStatusBar(w, a.source, a.fetching)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderTransactionsTab(cw, contentH)
	case 2:
		content = a.renderBudgetsTab(cw)
	case 3:
		content = a.renderHistoryTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
