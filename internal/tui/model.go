// Package tui is the terminal front end: one bubbletea event loop owning all
// mutable application state, with gateway calls running as commands that
// deliver typed result messages.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yuchingh/daybook/internal/gateway"
	domain "github.com/yuchingh/daybook/internal/model"
	"github.com/yuchingh/daybook/internal/streak"
)

type screenMode int

const (
	screenDashboard screenMode = iota
	screenForm
)

type dashboardLoadedMsg struct {
	session int
	year    int
	month   int
	data    *domain.DashboardData
	err     error
}

type saveDoneMsg struct {
	wasEdit       bool
	submittedDate string
	year          int
	month         int
	err           error
}

type deleteDoneMsg struct {
	year  int
	month int
	err   error
}

type checkInDoneMsg struct {
	date string
	err  error
}

type clearStatusMsg struct {
	id int
}

type monthOption struct {
	Year  int
	Month int
	Label string
}

const (
	formFocusDate = iota
	formFocusItem
	formFocusCategory
	formFocusMethod
	formFocusCurrency
	formFocusAmount
	formFocusNote
	formFocusSubmit
	formFocusCount
)

type model struct {
	gw        gateway.Gateway
	reactions *streak.Machine
	now       func() time.Time

	width  int
	height int

	screen   screenMode
	quitting bool

	months   []monthOption
	monthIdx int

	// refreshSession stamps every dashboard request; a response carrying an
	// older stamp is discarded, so a superseded refresh can never overwrite
	// a newer month's data.
	refreshSession int
	busy           bool
	saving         bool
	checkingIn     bool

	dash     *domain.DashboardData
	snap     streak.Snapshot
	haveSnap bool

	// pendingInsertDate carries a non-edit submission's date across the
	// confirming refresh; the positive-modal check runs against the
	// refreshed snapshot.
	pendingInsertDate string

	categoriesExpense []string
	categoriesIncome  []string
	categoriesLoaded  bool
	methodOptions     []string
	currencyOptions   []string

	statusText string
	statusID   int

	tableCursor int
	tableOffset int
	gestures    map[string]*rowGesture
	dragID      string

	confirmDeleteID string

	dateInput   textinput.Model
	itemInput   textinput.Model
	amountInput textinput.Model
	noteInput   textinput.Model
	categoryIdx int
	methodIdx   int
	currencyIdx int
	formFocus   int
	formErr     string
	editingID   string

	modal     streak.Modal
	calCursor streak.Cursor
}

// New builds the initial model. markers backs the reaction machine's
// once-per-day bookkeeping.
func New(gw gateway.Gateway, markers streak.MarkerStore) tea.Model {
	return newModel(gw, markers, time.Now)
}

func newModel(gw gateway.Gateway, markers streak.MarkerStore, now func() time.Time) model {
	date := textinput.New()
	date.Prompt = ""
	date.Placeholder = "yyyy-mm-dd"
	date.CharLimit = 10
	date.Width = 12

	item := textinput.New()
	item.Prompt = ""
	item.Placeholder = "what was it"
	item.Width = 28

	amount := textinput.New()
	amount.Prompt = ""
	amount.Placeholder = "0"
	amount.Width = 12

	note := textinput.New()
	note.Prompt = ""
	note.Placeholder = "optional"
	note.Width = 28

	m := model{
		gw:        gw,
		reactions: streak.NewMachine(markers),
		now:       now,
		// Init issues the first fetch immediately.
		busy:            true,
		months:          lastSixMonths(now()),
		gestures:        map[string]*rowGesture{},
		currencyOptions: []string{"TWD", "USD", "JPY", "EUR"},
		dateInput:       date,
		itemInput:       item,
		amountInput:     amount,
		noteInput:       note,
	}
	return m
}

// lastSixMonths lists the selectable months, newest first.
func lastSixMonths(now time.Time) []monthOption {
	out := make([]monthOption, 0, 6)
	for i := 0; i < 6; i++ {
		t := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -i, 0)
		out = append(out, monthOption{
			Year:  t.Year(),
			Month: int(t.Month()),
			Label: fmt.Sprintf("%d-%02d", t.Year(), int(t.Month())),
		})
	}
	return out
}

func (m model) today() string {
	return m.now().Format("2006-01-02")
}

func (m model) selectedMonth() (int, int) {
	opt := m.months[m.monthIdx]
	return opt.Year, opt.Month
}

func (m model) modalOpen() bool {
	return m.reactions.Showing() != streak.VariantNone
}

func (m model) Init() tea.Cmd {
	// The initial fetch carries the zero stamp the model starts with; any
	// later refresh bumps past it and supersedes it.
	year, month := m.selectedMonth()
	return m.refreshDashboardCmd(m.refreshSession, year, month)
}

// startRefresh bumps the generation stamp and issues the fetch. Only the
// response carrying the newest stamp will be applied.
func (m model) startRefresh(year, month int) (model, tea.Cmd) {
	m.refreshSession++
	m.busy = true
	return m, m.refreshDashboardCmd(m.refreshSession, year, month)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardLoadedMsg:
		return m.applyDashboardLoaded(msg)

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.formErr = ""
		if !msg.wasEdit {
			m.pendingInsertDate = msg.submittedDate
		}
		feedback := "saved!"
		if msg.wasEdit {
			feedback = "updated."
		}
		m.resetEditState()
		m.resetForm()
		m.screen = screenDashboard
		year, month := msg.year, msg.month
		if !m.selectMonth(year, month) {
			// Saved into a month outside the selector window: keep the
			// selector where it is and refresh what it shows.
			year, month = m.selectedMonth()
		}
		next, refresh := m.startRefresh(year, month)
		next, status := next.withStatus(feedback)
		return next, tea.Batch(refresh, status)

	case deleteDoneMsg:
		if msg.err != nil {
			return m.withStatus("delete failed: " + msg.err.Error())
		}
		next, refresh := m.startRefresh(msg.year, msg.month)
		next, status := next.withStatus("deleted.")
		return next, tea.Batch(refresh, status)

	case checkInDoneMsg:
		m.checkingIn = false
		if msg.err != nil {
			return m.withStatus("check-in failed: " + msg.err.Error())
		}
		if m.haveSnap {
			m.snap.AddProvisional(msg.date, domain.SourceCheckin)
		}
		year, month := m.selectedMonth()
		next, refresh := m.startRefresh(year, month)
		next, status := next.withStatus("checked in for today.")
		return next, tea.Batch(refresh, status)

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusText = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyDashboardLoaded ingests one refresh outcome. Stale generations are
// dropped before any state is touched.
func (m model) applyDashboardLoaded(msg dashboardLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.session != m.refreshSession {
		return m, nil
	}
	m.busy = false
	today := m.today()
	ctx := context.Background()

	if msg.err != nil {
		m.pendingInsertDate = ""
		// First-load eligibility is consumed even by a failed refresh.
		if modal, ok := m.reactions.HandleRefreshOutcome(ctx, nil, today); ok {
			m.openModal(modal)
		}
		return m.withStatus("refresh failed: " + msg.err.Error())
	}

	m.dash = msg.data
	m.snap = streak.SnapshotFrom(msg.data)
	m.haveSnap = true

	// Payment accounts refresh on every load; category options only populate
	// once, on the first successful load. The form may be open while this
	// lands, so the select indexes get clamped to the replaced slices.
	m.methodOptions = accountNames(msg.data.Accounts)
	if m.methodIdx >= len(m.methodOptions) {
		m.methodIdx = max(0, len(m.methodOptions)-1)
	}
	if !m.categoriesLoaded {
		m.categoriesExpense = msg.data.CategoriesExpense
		m.categoriesIncome = msg.data.CategoriesIncome
		m.categoriesLoaded = true
	}
	if opts := m.categoryOptions(); m.categoryIdx >= len(opts) {
		m.categoryIdx = max(0, len(opts)-1)
	}

	if m.tableCursor >= len(msg.data.History) {
		m.tableCursor = max(0, len(msg.data.History)-1)
	}
	m.ensureTableScrollWindow()
	m.pruneGestures(msg.data.History)
	m.confirmDeleteID = ""

	if modal, ok := m.reactions.HandleRefreshOutcome(ctx, &m.snap, today); ok {
		m.openModal(modal)
	}
	if m.pendingInsertDate != "" {
		date := m.pendingInsertDate
		m.pendingInsertDate = ""
		if modal, ok := m.reactions.HandleInsert(ctx, m.snap, date, today); ok {
			m.openModal(modal)
		}
	}
	return m, nil
}

func (m *model) openModal(modal streak.Modal) {
	m.modal = modal
	m.calCursor = streak.CursorFor(m.today(), m.now())
}

func (m *model) closeModal() {
	m.reactions.Close()
	m.modal = streak.Modal{}
}

// selectMonth moves the selector to (year, month) and reports whether that
// month is in the selector window.
func (m *model) selectMonth(year, month int) bool {
	for i, opt := range m.months {
		if opt.Year == year && opt.Month == month {
			m.monthIdx = i
			return true
		}
	}
	return false
}

func (m model) withStatus(text string) (model, tea.Cmd) {
	m.statusText = text
	m.statusID++
	return m, clearStatusCmd(m.statusID)
}

func (m *model) resetEditState() {
	m.editingID = ""
}

func (m *model) resetForm() {
	m.dateInput.SetValue(m.today())
	m.itemInput.SetValue("")
	m.amountInput.SetValue("")
	m.noteInput.SetValue("")
	m.categoryIdx = 0
	m.methodIdx = 0
	m.currencyIdx = 0
	m.formFocus = formFocusDate
	m.formErr = ""
}

func (m *model) pruneGestures(history []domain.Transaction) {
	keep := make(map[string]bool, len(history))
	for _, tx := range history {
		keep[tx.ID] = true
	}
	for id := range m.gestures {
		if !keep[id] {
			delete(m.gestures, id)
		}
	}
}

func (m *model) gestureFor(id string) *rowGesture {
	g, ok := m.gestures[id]
	if !ok {
		g = &rowGesture{}
		m.gestures[id] = g
	}
	return g
}

func (m *model) ensureTableScrollWindow() {
	visible := m.tableVisibleRows()
	if m.tableCursor < m.tableOffset {
		m.tableOffset = m.tableCursor
	}
	if m.tableCursor >= m.tableOffset+visible {
		m.tableOffset = m.tableCursor - visible + 1
	}
	if m.tableOffset < 0 {
		m.tableOffset = 0
	}
}

func (m model) tableVisibleRows() int {
	return 8
}

func accountNames(accounts []domain.Account) []string {
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if strings.TrimSpace(a.AccountName) == "" {
			continue
		}
		out = append(out, a.AccountName)
	}
	return out
}

// categoryOptions flattens the grouped expense/income category lists into
// one selectable sequence, expenses first.
func (m model) categoryOptions() []string {
	out := make([]string, 0, len(m.categoriesExpense)+len(m.categoriesIncome))
	out = append(out, m.categoriesExpense...)
	out = append(out, m.categoriesIncome...)
	return out
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.modalOpen() {
		return m.handleModalKey(msg)
	}

	switch m.screen {
	case screenForm:
		return m.handleFormKey(msg)
	default:
		return m.handleDashboardKey(msg)
	}
}

func (m model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.calCursor = m.calCursor.Prev()
		return m, nil
	case "right", "l":
		m.calCursor = m.calCursor.Next()
		return m, nil
	case "c":
		if m.checkInAvailable() {
			m.checkingIn = true
			m.closeModal()
			return m, m.checkInCmd(m.today())
		}
		return m, nil
	default:
		// Any other key is the backdrop: the modal always dismisses.
		m.closeModal()
		return m, nil
	}
}

// checkInAvailable gates the manual check-in: once today is logged the
// affordance stays off for the session.
func (m model) checkInAvailable() bool {
	if m.checkingIn || !m.haveSnap {
		return false
	}
	return !m.snap.HasDate(m.today())
}

func (m model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.historyRows()

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "r":
		if m.busy {
			return m, nil
		}
		year, month := m.selectedMonth()
		return m.startRefresh(year, month)

	case "left", "h":
		// Older month. The selector is disabled while a refresh is in flight.
		if m.busy || m.monthIdx >= len(m.months)-1 {
			return m, nil
		}
		m.monthIdx++
		m.resetEditState()
		m.tableCursor = 0
		m.tableOffset = 0
		year, month := m.selectedMonth()
		return m.startRefresh(year, month)

	case "right", "l":
		if m.busy || m.monthIdx <= 0 {
			return m, nil
		}
		m.monthIdx--
		m.resetEditState()
		m.tableCursor = 0
		m.tableOffset = 0
		year, month := m.selectedMonth()
		return m.startRefresh(year, month)

	case "up", "k":
		if m.tableCursor > 0 {
			m.tableCursor--
			m.ensureTableScrollWindow()
		}
		return m, nil

	case "down", "j":
		if m.tableCursor < len(rows)-1 {
			m.tableCursor++
			m.ensureTableScrollWindow()
		}
		return m, nil

	case "a":
		m.resetEditState()
		m.resetForm()
		m.screen = screenForm
		m.formFocus = formFocusItem
		m.focusFormInput()
		return m, nil

	case "e", "enter":
		if m.tableCursor < len(rows) {
			return m.enterEdit(rows[m.tableCursor]), nil
		}
		return m, nil

	case "d", "x":
		if m.tableCursor >= len(rows) {
			return m, nil
		}
		tx := rows[m.tableCursor]
		if m.confirmDeleteID != tx.ID {
			m.confirmDeleteID = tx.ID
			return m.withStatus("delete \"" + tx.ItemName + "\"? press d again to confirm")
		}
		m.confirmDeleteID = ""
		year, month := m.selectedMonth()
		return m, m.deleteTransactionCmd(tx.ID, year, month)

	case "s":
		if !m.haveSnap {
			return m, nil
		}
		m.openModal(m.reactions.OpenOverview(m.snap))
		return m, nil
	}

	return m, nil
}

func (m model) historyRows() []domain.Transaction {
	if m.dash == nil {
		return nil
	}
	return m.dash.History
}

// enterEdit prefills the form from a row. The original amount and currency
// are preferred over the converted value.
func (m model) enterEdit(tx domain.Transaction) model {
	m.resetForm()
	m.editingID = tx.ID
	m.dateInput.SetValue(tx.Date)
	m.itemInput.SetValue(tx.ItemName)
	m.amountInput.SetValue(trimFloat(tx.Amount))
	m.noteInput.SetValue(tx.Note)
	m.categoryIdx = indexOrZero(m.categoryOptions(), tx.Category)
	m.methodIdx = indexOrZero(m.methodOptions, tx.PaymentMethod)
	currency := tx.Currency
	if currency == "" {
		currency = "TWD"
	}
	m.currencyIdx = indexOrZero(m.currencyOptions, currency)
	m.screen = screenForm
	m.formFocus = formFocusItem
	m.focusFormInput()
	return m
}

func indexOrZero(options []string, value string) int {
	for i, opt := range options {
		if opt == value {
			return i
		}
	}
	return 0
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modalOpen() {
		if msg.Action == tea.MouseActionPress {
			m.closeModal()
		}
		return m, nil
	}
	if m.screen != screenDashboard {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		row, ok := m.tableRowAt(msg.Y)
		if !ok {
			return m, nil
		}
		rows := m.historyRows()
		if row >= len(rows) {
			return m, nil
		}
		tx := rows[row]
		m.tableCursor = row
		g := m.gestureFor(tx.ID)
		if g.Open() {
			if action, hit := m.actionZoneHit(msg.X); hit {
				g.Reset()
				switch action {
				case rowActionEdit:
					return m.enterEdit(tx), nil
				case rowActionDelete:
					year, month := m.selectedMonth()
					return m, m.deleteTransactionCmd(tx.ID, year, month)
				}
			}
		}
		m.dragID = tx.ID
		g.Press(msg.X)
		return m, nil

	case tea.MouseActionMotion:
		if m.dragID != "" {
			m.gestureFor(m.dragID).Move(msg.X)
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.dragID != "" {
			m.gestureFor(m.dragID).Release()
			m.dragID = ""
		}
		return m, nil
	}

	return m, nil
}

type rowAction int

const (
	rowActionEdit rowAction = iota
	rowActionDelete
)

// actionZoneHit maps an X coordinate onto the revealed edit/delete zones at
// the right edge of an open row.
func (m model) actionZoneHit(x int) (rowAction, bool) {
	width := m.layoutWidth()
	switch {
	case x >= width-actionZoneWidth/2:
		return rowActionDelete, true
	case x >= width-actionZoneWidth:
		return rowActionEdit, true
	default:
		return 0, false
	}
}
