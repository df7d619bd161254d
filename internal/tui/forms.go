package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"moneytrack/internal/finance"

	"github.com/charmbracelet/huh"
)

// loginValues backs the login form fields.
type loginValues struct {
	username string
	password string
}

func newLoginForm(vals *loginValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&vals.username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&vals.password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
		),
	)
}

// addTxValues backs the add-transaction form fields. Amount and date stay
// strings until submission; transaction() does the parsing.
type addTxValues struct {
	description string
	amount      string
	txType      string
	category    string
	date        string
}

func newAddTxValues() *addTxValues {
	return &addTxValues{
		txType: finance.TypeExpense,
		date:   time.Now().Format("2006-01-02"),
	}
}

func newAddTxForm(vals *addTxValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&vals.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&vals.amount).
				Validate(validateAmount),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", finance.TypeExpense),
					huh.NewOption("Income", finance.TypeIncome),
				).
				Value(&vals.txType),
			huh.NewInput().
				Title("Category").
				Placeholder("leave blank for none").
				Value(&vals.category),
			huh.NewInput().
				Title("Date").
				Value(&vals.date).
				Validate(validateDate),
		),
	)
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number, like 12.50")
	}
	if v < 0 {
		return errors.New("amount cannot be negative")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// transaction builds the domain transaction from the submitted fields.
func (v addTxValues) transaction() (finance.Transaction, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(v.amount), 64)
	if err != nil || amount < 0 {
		return finance.Transaction{}, errors.New("invalid amount")
	}
	return finance.NewTransaction(
		strings.TrimSpace(v.description),
		amount,
		v.txType,
		strings.TrimSpace(v.category),
		strings.TrimSpace(v.date),
	), nil
}
