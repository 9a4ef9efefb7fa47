package model

import "encoding/json"

// Transaction is one expense or income record as the backend returns it.
// Amount is in the original currency; ConvertedAmount is the TWD value the
// backend computed with ExchangeRate at write time.
type Transaction struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"` // yyyy-mm-dd
	ItemName        string  `json:"itemName"`
	Category        string  `json:"category"`
	PaymentMethod   string  `json:"paymentMethod"`
	Currency        string  `json:"currency"`
	Amount          float64 `json:"amount"`
	ExchangeRate    float64 `json:"exchangeRate"`
	ConvertedAmount float64 `json:"twdAmount"`
	Note            string  `json:"note"`
}

// TransactionInput is the client-supplied part of a transaction. Conversion
// to the base currency happens on the backend.
type TransactionInput struct {
	Date          string `json:"date"`
	ItemName      string `json:"item"`
	Category      string `json:"category"`
	PaymentMethod string `json:"method"`
	Currency      string `json:"currency"`
	Amount        string `json:"amount"`
	Note          string `json:"note"`
}

// Summary is the month's totals as computed by the backend.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// Account is a payment account; its name doubles as a payment method option.
type Account struct {
	AccountName string `json:"accountName"`
}

// LogSource says how a calendar date came to count toward the streak.
type LogSource string

const (
	SourceTransaction LogSource = "on_time_transaction"
	SourceCheckin     LogSource = "manual_checkin"
)

// LoggedDate is one streak-qualifying calendar date with its source tag.
type LoggedDate struct {
	Date   string    `json:"date"` // yyyy-mm-dd
	Source LogSource `json:"source"`
}

// UnmarshalJSON accepts both wire shapes for a logged date: the Apps Script
// backend sends bare "yyyy-mm-dd" strings, the Supabase RPC sends
// {date, source} objects. Bare strings are tagged as on-time transactions.
func (l *LoggedDate) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var date string
		if err := json.Unmarshal(data, &date); err != nil {
			return err
		}
		l.Date = date
		l.Source = SourceTransaction
		return nil
	}

	type wire struct {
		Date   string    `json:"date"`
		Source LogSource `json:"source"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	l.Date = w.Date
	l.Source = w.Source
	if l.Source == "" {
		l.Source = SourceTransaction
	}
	return nil
}

// DashboardData is everything one dashboard fetch returns for a month.
type DashboardData struct {
	Summary           Summary       `json:"summary"`
	History           []Transaction `json:"history"`
	StreakCount       int           `json:"streakCount"`
	StreakBroken      bool          `json:"streakBroken"`
	TotalLoggedDays   int           `json:"totalLoggedDays"`
	LongestStreak     int           `json:"longestStreak"`
	LoggedDates       []LoggedDate  `json:"loggedDates"`
	CategoriesExpense []string      `json:"categoriesExpense"`
	CategoriesIncome  []string      `json:"categoriesIncome"`
	Accounts          []Account     `json:"accounts"`
}
