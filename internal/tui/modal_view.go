package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	domain "github.com/yuchingh/daybook/internal/model"
	"github.com/yuchingh/daybook/internal/streak"
)

// renderReactionModal draws the overlay: variant copy on top, the streak
// calendar beneath, and the action hints.
func (m model) renderReactionModal(layoutWidth int) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	switch m.modal.Variant {
	case streak.VariantBroken:
		titleStyle = titleStyle.Foreground(lipgloss.Color("#F15B5B"))
	case streak.VariantPositive:
		titleStyle = titleStyle.Foreground(lipgloss.Color("#5CCB76"))
	default:
		titleStyle = titleStyle.Foreground(lipgloss.Color("#FFD54A"))
	}

	lines := []string{
		titleStyle.Render(m.modal.Title),
		"",
		m.modal.Text,
		"",
		m.renderCalendar(),
		"",
	}

	stat := fmt.Sprintf("total %d days  ·  longest %d days", m.snap.TotalDays, m.snap.LongestStreak)
	lines = append(lines, dimStyle.Render(stat))

	hints := []string{"←/→: month", m.modal.ButtonLabel + " (any key)"}
	if m.checkInAvailable() {
		hints = append([]string{"c: check in today"}, hints...)
	}
	lines = append(lines, "", dimStyle.Render(strings.Join(hints, "  ·  ")))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FFD54A")).
		Padding(1, 2).
		MaxWidth(max(30, layoutWidth-4))
	return box.Render(strings.Join(lines, "\n"))
}

// renderCalendar draws the cursor month as a 7-column week grid. Cells carry
// the same tagging the grid computes: transaction days, check-in days, today.
func (m model) renderCalendar() string {
	grid := streak.BuildGrid(m.calCursor, m.snap.LoggedDates, m.today())

	header := accentStyle.Render(fmt.Sprintf("%d-%02d", grid.Year, grid.Month))
	weekdays := dimStyle.Render("Su Mo Tu We Th Fr Sa")

	cells := make([]string, 0, grid.LeadingBlanks+len(grid.Days))
	for i := 0; i < grid.LeadingBlanks; i++ {
		cells = append(cells, "  ")
	}
	for _, day := range grid.Days {
		cells = append(cells, renderDayCell(day))
	}

	rows := []string{header, weekdays}
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		rows = append(rows, strings.Join(cells[start:end], " "))
	}
	return strings.Join(rows, "\n")
}

func renderDayCell(day streak.DayCell) string {
	label := fmt.Sprintf("%2d", day.Day)
	style := lipgloss.NewStyle()
	if day.HasLog {
		switch day.Source {
		case domain.SourceCheckin:
			style = style.Foreground(lipgloss.Color("#6CBFE6")).Bold(true)
		default:
			style = style.Foreground(lipgloss.Color("#5CCB76")).Bold(true)
		}
	} else {
		style = style.Foreground(lipgloss.Color("#9CA3AF"))
	}
	if day.IsToday {
		style = style.Underline(true)
	}
	return style.Render(label)
}
