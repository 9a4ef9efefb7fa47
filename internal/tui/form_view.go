package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	domain "github.com/yuchingh/daybook/internal/model"
)

func (m *model) focusFormInput() {
	m.dateInput.Blur()
	m.itemInput.Blur()
	m.amountInput.Blur()
	m.noteInput.Blur()
	switch m.formFocus {
	case formFocusDate:
		m.dateInput.Focus()
	case formFocusItem:
		m.itemInput.Focus()
	case formFocusAmount:
		m.amountInput.Focus()
	case formFocusNote:
		m.noteInput.Focus()
	}
}

func (m model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.resetEditState()
		m.resetForm()
		m.screen = screenDashboard
		return m, nil

	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % formFocusCount
		m.focusFormInput()
		return m, nil

	case "shift+tab", "up":
		m.formFocus = (m.formFocus - 1 + formFocusCount) % formFocusCount
		m.focusFormInput()
		return m, nil

	case "left", "right":
		if m.formFocus == formFocusCategory || m.formFocus == formFocusMethod || m.formFocus == formFocusCurrency {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.cycleSelect(delta)
			return m, nil
		}
		// Text inputs keep the arrows for cursor movement.

	case "enter":
		if m.formFocus == formFocusSubmit {
			return m.submitForm()
		}
		m.formFocus = (m.formFocus + 1) % formFocusCount
		m.focusFormInput()
		return m, nil

	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case formFocusDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case formFocusItem:
		m.itemInput, cmd = m.itemInput.Update(msg)
	case formFocusAmount:
		m.amountInput, cmd = m.amountInput.Update(msg)
	case formFocusNote:
		m.noteInput, cmd = m.noteInput.Update(msg)
	}
	return m, cmd
}

func (m *model) cycleSelect(delta int) {
	switch m.formFocus {
	case formFocusCategory:
		if opts := m.categoryOptions(); len(opts) > 0 {
			m.categoryIdx = (m.categoryIdx + delta + len(opts)) % len(opts)
		}
	case formFocusMethod:
		if len(m.methodOptions) > 0 {
			m.methodIdx = (m.methodIdx + delta + len(m.methodOptions)) % len(m.methodOptions)
		}
	case formFocusCurrency:
		m.currencyIdx = (m.currencyIdx + delta + len(m.currencyOptions)) % len(m.currencyOptions)
	}
}

func (m model) submitForm() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	in, err := m.formInput()
	if err != "" {
		m.formErr = err
		return m, nil
	}
	m.formErr = ""
	m.saving = true
	return m, m.saveTransactionCmd(m.editingID, in)
}

// formInput validates the form and assembles the gateway payload. Item,
// amount and payment method are required; the date must be a real day.
func (m model) formInput() (domain.TransactionInput, string) {
	var in domain.TransactionInput

	date := strings.TrimSpace(m.dateInput.Value())
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return in, "date must be yyyy-mm-dd"
	}
	item := strings.TrimSpace(m.itemInput.Value())
	if item == "" {
		return in, "item is required"
	}
	amount := strings.TrimSpace(m.amountInput.Value())
	if amount == "" {
		return in, "amount is required"
	}
	if n, err := strconv.ParseFloat(amount, 64); err != nil || n == 0 {
		return in, "amount must be a non-zero number"
	}
	if len(m.methodOptions) == 0 {
		return in, "no payment methods loaded yet"
	}

	in.Date = date
	in.ItemName = item
	in.Amount = amount
	in.PaymentMethod = m.methodOptions[m.methodIdx]
	if opts := m.categoryOptions(); len(opts) > 0 {
		in.Category = opts[m.categoryIdx]
	}
	in.Currency = m.currencyOptions[m.currencyIdx]
	in.Note = strings.TrimSpace(m.noteInput.Value())
	return in, ""
}

func (m model) renderFormScreen(layoutWidth int) string {
	title := "edit transaction"
	submitLabel := "update"
	if m.editingID == "" {
		title = "new transaction"
		submitLabel = "save"
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Width(10)
	focusMark := func(focus int) string {
		if m.formFocus == focus {
			return lipgloss.NewStyle().Foreground(lipgloss.Color("#F47A60")).Render("> ")
		}
		return "  "
	}
	selectValue := func(options []string, idx int, focus int) string {
		if len(options) == 0 {
			return lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Render("(none)")
		}
		if idx >= len(options) {
			idx = len(options) - 1
		}
		value := options[idx]
		if m.formFocus == focus {
			return "< " + value + " >"
		}
		return value
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD54A")).Render(title),
		"",
		focusMark(formFocusDate) + labelStyle.Render("date") + m.dateInput.View(),
		focusMark(formFocusItem) + labelStyle.Render("item") + m.itemInput.View(),
		focusMark(formFocusCategory) + labelStyle.Render("category") + selectValue(m.categoryOptions(), m.categoryIdx, formFocusCategory),
		focusMark(formFocusMethod) + labelStyle.Render("method") + selectValue(m.methodOptions, m.methodIdx, formFocusMethod),
		focusMark(formFocusCurrency) + labelStyle.Render("currency") + selectValue(m.currencyOptions, m.currencyIdx, formFocusCurrency),
		focusMark(formFocusAmount) + labelStyle.Render("amount") + m.amountInput.View(),
		focusMark(formFocusNote) + labelStyle.Render("note") + m.noteInput.View(),
		"",
	}

	submit := submitLabel
	if m.saving {
		submit = "saving..."
	}
	submitStyle := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	if m.formFocus == formFocusSubmit {
		submitStyle = submitStyle.BorderForeground(lipgloss.Color("#F47A60")).Bold(true)
	} else {
		submitStyle = submitStyle.BorderForeground(lipgloss.Color("#6CBFE6"))
	}
	lines = append(lines, focusMark(formFocusSubmit)+submitStyle.Render(submit))

	if m.formErr != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#F15B5B")).Render("error: "+m.formErr))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Render("tab: next field  enter: submit  esc: cancel"))

	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(layoutWidth).Render(body)
}
