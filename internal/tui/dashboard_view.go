package tui

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/yuchingh/daybook/internal/stats"
	"github.com/yuchingh/daybook/internal/streak"
)

// Layout offsets used both by rendering and by mouse hit testing. The frame
// border, frame padding and content padding each contribute one row/column.
const (
	contentTopOffset  = 3
	contentLeftOffset = 3

	// dashboardTableTop is the content-relative row of the first table row:
	// header(1) + blank(1) + summary(3) + blank(1) + status(1) + columns(1).
	dashboardTableTop = 8

	actionZoneWidth = 14
)

var (
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F47A60"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F15B5B"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5CCB76")).Bold(true)
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F15B5B")).Bold(true)

	chartPalette = []string{"#F47A60", "#FFD54A", "#6CBFE6", "#5CCB76", "#D4CDE9", "#F15B5B", "#87CEEB", "#C084FC"}
)

func (m model) layoutWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(40, m.width-2*contentLeftOffset)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F47A60")).
		Padding(1, 1)
	contentStyle := lipgloss.NewStyle().Padding(1, 1, 0, 1)
	if m.width > 0 {
		frame = frame.Width(max(1, m.width-frame.GetHorizontalBorderSize()))
	}
	if m.height > 0 {
		frame = frame.Height(max(1, m.height-frame.GetVerticalBorderSize()))
	}
	layoutWidth := m.layoutWidth()

	var body string
	if m.screen == screenForm {
		body = m.renderFormScreen(layoutWidth)
	} else {
		body = m.renderDashboardScreen(layoutWidth)
	}
	content := contentStyle.Render(body)

	if m.modalOpen() {
		overlay := m.renderReactionModal(layoutWidth)
		layoutHeight := max(1, m.height-frame.GetVerticalFrameSize()-contentStyle.GetVerticalFrameSize())
		centered := lipgloss.Place(layoutWidth, layoutHeight, lipgloss.Center, lipgloss.Center, overlay)
		return frame.Render(contentStyle.Render(centered))
	}

	return frame.Render(content)
}

func (m model) renderDashboardScreen(layoutWidth int) string {
	lines := []string{
		m.renderHeaderLine(layoutWidth),
		"",
		m.renderSummaryCards(layoutWidth),
		"",
		m.renderStatusLine(),
		m.renderTableColumns(layoutWidth),
	}
	lines = append(lines, m.renderTableRows(layoutWidth)...)
	lines = append(lines, "", m.renderExpenseChart(layoutWidth))
	lines = append(lines, "", m.renderMethodTotals(layoutWidth))
	lines = append(lines, "", dimStyle.Render("a: add  e: edit  d: delete  ←/→: month  s: streak  r: refresh  q: quit"))
	return strings.Join(lines, "\n")
}

func (m model) renderHeaderLine(layoutWidth int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD54A")).Render("daybook")

	month := m.months[m.monthIdx].Label
	selector := accentStyle.Render("‹ ") + month + accentStyle.Render(" ›")
	if m.busy {
		selector = dimStyle.Render("‹ "+month+" ›") + " " + dimStyle.Render("loading...")
	}

	badge := m.renderStreakBadge()
	left := title + "  " + selector
	gap := max(1, layoutWidth-lipgloss.Width(left)-lipgloss.Width(badge))
	return left + strings.Repeat(" ", gap) + badge
}

// renderStreakBadge is the compact indicator; its state comes straight from
// the snapshot's badge.
func (m model) renderStreakBadge() string {
	if !m.haveSnap {
		return dimStyle.Render("streak -")
	}
	switch m.snap.Badge() {
	case streak.BadgeBroken:
		return errStyle.Render(fmt.Sprintf("💢 streak %d", m.snap.Count))
	case streak.BadgeActive:
		return positiveStyle.Render(fmt.Sprintf("🔥 streak %d", m.snap.Count))
	default:
		return dimStyle.Render("✨ streak 0")
	}
}

func (m model) renderSummaryCards(layoutWidth int) string {
	cardWidth := max(16, (layoutWidth-4)/3)
	card := func(label, value string, valueStyle lipgloss.Style) string {
		inner := dimStyle.Render(label) + "\n" + valueStyle.Render(value)
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6CBFE6")).
			Padding(0, 1).
			Width(cardWidth).
			Render(inner)
	}

	income, expense, balance := 0.0, 0.0, 0.0
	if m.dash != nil {
		income = m.dash.Summary.TotalIncome
		expense = m.dash.Summary.TotalExpense
		balance = m.dash.Summary.Balance
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("income", formatTWD(income), lipgloss.NewStyle().Bold(true)),
		" ",
		card("expense", formatTWD(expense), lipgloss.NewStyle().Bold(true)),
		" ",
		card("balance", formatTWD(balance), balanceStyleFor(balance)),
	)
}

func balanceStyleFor(balance float64) lipgloss.Style {
	if balance < 0 {
		return negativeStyle
	}
	return positiveStyle
}

func (m model) renderStatusLine() string {
	if m.statusText != "" {
		return accentStyle.Render(m.statusText)
	}
	if m.dash == nil && m.busy {
		return dimStyle.Render("loading dashboard...")
	}
	return ""
}

func (m model) renderTableColumns(layoutWidth int) string {
	header := fmt.Sprintf("%-10s  %-12s  %-*s  %-12s  %12s",
		"date", "category", m.itemColumnWidth(layoutWidth), "item", "method", "amount")
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB")).Render(header)
}

func (m model) itemColumnWidth(layoutWidth int) int {
	return max(8, layoutWidth-10-12-12-12-10)
}

func (m model) renderTableRows(layoutWidth int) []string {
	rows := m.historyRows()
	if len(rows) == 0 {
		return []string{dimStyle.Render("no transactions this month")}
	}

	visible := m.tableVisibleRows()
	end := min(len(rows), m.tableOffset+visible)
	out := make([]string, 0, visible)
	for i := m.tableOffset; i < end; i++ {
		tx := rows[i]
		line := fmt.Sprintf("%-10s  %-12s  %-*s  %-12s  %12s",
			tx.Date,
			truncate(labelOrDash(tx.Category), 12),
			m.itemColumnWidth(layoutWidth), truncate(tx.ItemName, m.itemColumnWidth(layoutWidth)),
			truncate(labelOrDash(tx.PaymentMethod), 12),
			formatTWD(tx.ConvertedAmount),
		)

		g := m.gestures[tx.ID]
		if g != nil && g.Offset() != 0 {
			line = shiftLine(line, g.Offset(), layoutWidth-actionZoneWidth)
		}
		if g != nil && g.Open() {
			zone := errStyle.Render(" del ")
			zone = accentStyle.Render(" edit ") + zone
			pad := max(0, layoutWidth-lipgloss.Width(line)-lipgloss.Width(zone))
			line += strings.Repeat(" ", pad) + zone
		}

		if i == m.tableCursor {
			line = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("#2A2A36")).Render(line)
		}
		out = append(out, line)
	}
	for len(out) < visible {
		out = append(out, "")
	}
	if len(rows) > visible {
		out = append(out, dimStyle.Render(fmt.Sprintf("%d-%d of %d", m.tableOffset+1, end, len(rows))))
	}
	return out
}

// shiftLine slides a row horizontally for the drag animation, clamped so the
// action zone never gets overdrawn.
func shiftLine(line string, offset, maxWidth int) string {
	if offset > 0 {
		return strings.Repeat(" ", min(offset, settleThreshold)) + line
	}
	cut := min(-offset, settleThreshold)
	runes := []rune(line)
	if cut < len(runes) {
		runes = runes[cut:]
	}
	out := string(runes)
	if lipgloss.Width(out) > maxWidth {
		out = truncate(out, maxWidth)
	}
	return out
}

// renderExpenseChart is the doughnut chart reborn as horizontal bars: one per
// expense category, widths proportional to spend share.
func (m model) renderExpenseChart(layoutWidth int) string {
	if m.dash == nil {
		return ""
	}
	totals := stats.ExpenseByCategory(m.dash.History, m.dash.CategoriesIncome)
	if len(totals) == 0 {
		return dimStyle.Render("no expenses to chart")
	}

	barWidth := max(10, layoutWidth-36)
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB")).Render("spending by category")}
	for i, t := range totals {
		fill := int(t.Share * float64(barWidth))
		if fill < 1 {
			fill = 1
		}
		color := chartPalette[i%len(chartPalette)]
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", fill))
		lines = append(lines, fmt.Sprintf("%-14s %s %s",
			truncate(t.Label, 14), bar, formatTWD(t.Amount)))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderMethodTotals(layoutWidth int) string {
	if m.dash == nil {
		return ""
	}
	totals := stats.ByPaymentMethod(m.dash.History)
	if len(totals) == 0 {
		return ""
	}
	parts := make([]string, 0, len(totals))
	for _, t := range totals {
		parts = append(parts, fmt.Sprintf("%s %s", t.Label, formatTWD(t.Amount)))
	}
	line := "by method: " + strings.Join(parts, "  ·  ")
	return dimStyle.Render(truncate(line, layoutWidth))
}

// tableRowAt maps a terminal row onto a history index, mirroring the
// dashboard layout.
func (m model) tableRowAt(y int) (int, bool) {
	top := contentTopOffset + dashboardTableTop
	idx := y - top + m.tableOffset
	if idx < m.tableOffset || idx >= m.tableOffset+m.tableVisibleRows() {
		return 0, false
	}
	if idx < 0 || idx >= len(m.historyRows()) {
		return 0, false
	}
	return idx, true
}

func formatTWD(v float64) string {
	return money.NewFromFloat(v, money.TWD).Display()
}

func labelOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
