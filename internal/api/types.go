package api

import "moneytrack/internal/finance"

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetConfirmRequest struct {
	UID      string `json:"uid" validate:"required"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type transactionRequest struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Category    string  `json:"category" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

type budgetPayload struct {
	Category string  `json:"category" validate:"required"`
	Limit    float64 `json:"limit" validate:"gte=0"`
}

type changeBudgetRequest struct {
	Budget budgetPayload `json:"budget"`
}

type removeBudgetRequest struct {
	BudgetName string `json:"budget_name" validate:"required"`
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type accessResponse struct {
	Access string `json:"access"`
}

type financialDataResponse struct {
	FinancialData finance.FinancialData `json:"financial_data"`
}
