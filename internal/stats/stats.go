// Package stats derives the per-month aggregate views (category and
// payment-method totals) from a fetched transaction list. Everything here is
// pure computation over the dashboard response; the backend owns the real
// aggregation.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/yuchingh/daybook/internal/model"
)

const (
	// FallbackCategory labels transactions with a blank category.
	FallbackCategory = "Uncategorized"
	// FallbackMethod labels transactions with a blank payment method.
	FallbackMethod = "Other"
)

// Total is one aggregate row. Share is the row's fraction of the summed
// absolute amounts, for bar widths; zero when the group sums to nothing.
type Total struct {
	Label  string
	Amount float64
	Share  float64
}

// ByCategory groups converted amounts by category, sorted by absolute value
// descending.
func ByCategory(history []model.Transaction) []Total {
	return group(history, func(tx model.Transaction) string {
		return labelOr(tx.Category, FallbackCategory)
	})
}

// ExpenseByCategory is ByCategory restricted to expense entries: any
// transaction whose category is in the income-category set is excluded, so
// the chart shows spending only.
func ExpenseByCategory(history []model.Transaction, incomeCategories []string) []Total {
	income := make(map[string]bool, len(incomeCategories))
	for _, c := range incomeCategories {
		income[c] = true
	}

	expenses := make([]model.Transaction, 0, len(history))
	for _, tx := range history {
		if income[tx.Category] {
			continue
		}
		expenses = append(expenses, tx)
	}
	return ByCategory(expenses)
}

// ByPaymentMethod groups converted amounts by payment method, sorted by
// absolute value descending.
func ByPaymentMethod(history []model.Transaction) []Total {
	return group(history, func(tx model.Transaction) string {
		return labelOr(tx.PaymentMethod, FallbackMethod)
	})
}

func labelOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func group(history []model.Transaction, keyOf func(model.Transaction) string) []Total {
	sums := make(map[string]float64, len(history))
	order := make([]string, 0, len(history))
	for _, tx := range history {
		key := keyOf(tx)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += tx.ConvertedAmount
	}

	totals := make([]Total, 0, len(order))
	var absSum float64
	for _, label := range order {
		totals = append(totals, Total{Label: label, Amount: sums[label]})
		absSum += math.Abs(sums[label])
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return math.Abs(totals[i].Amount) > math.Abs(totals[j].Amount)
	})

	if absSum > 0 {
		for i := range totals {
			totals[i].Share = math.Abs(totals[i].Amount) / absSum
		}
	}
	return totals
}
