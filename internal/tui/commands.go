package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	domain "github.com/yuchingh/daybook/internal/model"
)

const gatewayCallTimeout = 30 * time.Second

func (m model) refreshDashboardCmd(session, year, month int) tea.Cmd {
	today := m.today()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayCallTimeout)
		defer cancel()
		data, err := m.gw.DashboardData(ctx, year, month, today)
		return dashboardLoadedMsg{session: session, year: year, month: month, data: data, err: err}
	}
}

func (m model) saveTransactionCmd(editingID string, in domain.TransactionInput) tea.Cmd {
	year, month := monthOf(in.Date, m.selectedMonth)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayCallTimeout)
		defer cancel()
		var err error
		if editingID != "" {
			err = m.gw.UpdateTransaction(ctx, editingID, in)
		} else {
			err = m.gw.CreateTransaction(ctx, in)
		}
		return saveDoneMsg{
			wasEdit:       editingID != "",
			submittedDate: in.Date,
			year:          year,
			month:         month,
			err:           err,
		}
	}
}

func (m model) deleteTransactionCmd(id string, year, month int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayCallTimeout)
		defer cancel()
		err := m.gw.DeleteTransaction(ctx, id)
		return deleteDoneMsg{year: year, month: month, err: err}
	}
}

func (m model) checkInCmd(date string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayCallTimeout)
		defer cancel()
		err := m.gw.CheckIn(ctx, date)
		return checkInDoneMsg{date: date, err: err}
	}
}

func clearStatusCmd(id int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// monthOf extracts (year, month) from a yyyy-mm-dd date, falling back to the
// currently selected month when the date does not parse.
func monthOf(date string, fallback func() (int, int)) (int, int) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) == 3 {
		year, errY := strconv.Atoi(parts[0])
		month, errM := strconv.Atoi(parts[1])
		if errY == nil && errM == nil && month >= 1 && month <= 12 {
			return year, month
		}
	}
	return fallback()
}
