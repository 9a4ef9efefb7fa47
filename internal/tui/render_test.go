package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	domain "github.com/yuchingh/daybook/internal/model"
)

func TestDashboardRendersBalanceAndRows(t *testing.T) {
	m := testModel(newMemMarkers())
	m.width = 100
	m.height = 40

	data := monthData(50000, 32000)
	data.History = []domain.Transaction{
		{ID: "tx-1", Date: "2025-06-14", ItemName: "coffee", Category: "Food", PaymentMethod: "Cash", ConvertedAmount: 120},
	}
	m = apply(t, m, dashboardLoadedMsg{session: m.refreshSession, data: data})

	out := ansi.Strip(m.View())
	require.Contains(t, out, "daybook")
	require.Contains(t, out, "2025-06")
	require.Contains(t, out, "18,000")
	require.Contains(t, out, "coffee")
	require.Contains(t, out, "Food")
	require.Contains(t, out, "spending by category")
	require.Contains(t, out, "by method: Cash")
}

func TestBalanceStyleSelection(t *testing.T) {
	require.Equal(t, positiveStyle, balanceStyleFor(18000))
	require.Equal(t, positiveStyle, balanceStyleFor(0))
	require.Equal(t, negativeStyle, balanceStyleFor(-2500))
}

func TestModalOverlayRendersCopyAndCalendar(t *testing.T) {
	m := testModel(newMemMarkers())
	m.width = 100
	m.height = 40

	data := monthData(0, 0)
	data.StreakCount = 3
	data.LongestStreak = 7
	m = apply(t, m, dashboardLoadedMsg{session: m.refreshSession, data: data})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	out := ansi.Strip(m.View())
	require.Contains(t, out, "Current streak: 3 days")
	require.Contains(t, out, "Su Mo Tu We Th Fr Sa")
	require.Contains(t, out, "longest 7 days")
	require.Contains(t, out, "c: check in today")
}

func TestFormRendersModeSpecificCopy(t *testing.T) {
	m := testModel(newMemMarkers())
	m.width = 100
	m.height = 40

	data := monthData(0, 100)
	data.History = []domain.Transaction{
		{ID: "tx-1", Date: "2025-06-14", ItemName: "coffee", Category: "Food", PaymentMethod: "Cash", Amount: 120, Currency: "TWD"},
	}
	m = apply(t, m, dashboardLoadedMsg{session: m.refreshSession, data: data})

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	out := ansi.Strip(m.View())
	require.Contains(t, out, "new transaction")
	require.Contains(t, out, "save")

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	out = ansi.Strip(m.View())
	require.Contains(t, out, "edit transaction")
	require.Contains(t, out, "update")
	require.Contains(t, out, "coffee")
}

func TestFormSurvivesAccountListShrinking(t *testing.T) {
	m := testModel(newMemMarkers())
	m.width = 100
	m.height = 40

	data := monthData(0, 120)
	data.Accounts = []domain.Account{{AccountName: "Cash"}, {AccountName: "Card"}, {AccountName: "Bank"}}
	data.History = []domain.Transaction{
		{ID: "tx-1", Date: "2025-06-14", ItemName: "coffee", Category: "Food", PaymentMethod: "Bank", Amount: 120, Currency: "TWD"},
	}
	m = apply(t, m, dashboardLoadedMsg{session: m.refreshSession, data: data})

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.Equal(t, 2, m.methodIdx)

	// A refresh lands while the form is open and the account list shrank.
	shrunk := monthData(0, 120)
	shrunk.History = data.History
	m = apply(t, m, dashboardLoadedMsg{session: m.refreshSession, data: shrunk})
	require.Equal(t, 0, m.methodIdx)

	out := ansi.Strip(m.View())
	require.Contains(t, out, "edit transaction")
	require.Contains(t, out, "Cash")

	in, formErr := m.formInput()
	require.Empty(t, formErr)
	require.Equal(t, "Cash", in.PaymentMethod)
}

func TestEmptyMonthRendersPlaceholder(t *testing.T) {
	m := testModel(newMemMarkers())
	m.width = 100
	m.height = 40
	m = apply(t, m, dashboardLoadedMsg{session: m.refreshSession, data: monthData(0, 0)})

	out := ansi.Strip(m.View())
	require.Contains(t, out, "no transactions this month")
	require.Contains(t, out, "no expenses to chart")
}
