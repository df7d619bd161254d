package api

import (
	"context"
	"fmt"
	"net/http"

	"moneytrack/internal/auth"
	"moneytrack/internal/finance"
)

// Register creates an account and stores the issued token pair.
func (c *Client) Register(ctx context.Context, email, password string) (auth.Tokens, error) {
	req := registerRequest{Email: email, Password: password}
	if err := c.validate.Struct(req); err != nil {
		return auth.Tokens{}, fmt.Errorf("api: invalid signup input: %w", err)
	}

	var resp tokenPairResponse
	if err := c.do(ctx, http.MethodPost, "/api/register/", req, &resp); err != nil {
		return auth.Tokens{}, err
	}

	pair := auth.Tokens{Access: resp.Access, Refresh: resp.Refresh}
	if err := c.tokens.Set(pair); err != nil {
		return auth.Tokens{}, err
	}
	return pair, nil
}

// Login exchanges credentials for a token pair and stores it.
func (c *Client) Login(ctx context.Context, username, password string) (auth.Tokens, error) {
	req := loginRequest{Username: username, Password: password}
	if err := c.validate.Struct(req); err != nil {
		return auth.Tokens{}, fmt.Errorf("api: invalid login input: %w", err)
	}

	var resp tokenPairResponse
	if err := c.do(ctx, http.MethodPost, "/api/token/", req, &resp); err != nil {
		return auth.Tokens{}, err
	}

	pair := auth.Tokens{Access: resp.Access, Refresh: resp.Refresh}
	if err := c.tokens.Set(pair); err != nil {
		return auth.Tokens{}, err
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a new access token. It bypasses
// the bearer/retry path entirely: a rejected refresh must never trigger
// another refresh.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	req := refreshRequest{Refresh: refreshToken}
	if err := c.validate.Struct(req); err != nil {
		return "", fmt.Errorf("api: invalid refresh input: %w", err)
	}

	payload, err := jsonBody(req)
	if err != nil {
		return "", err
	}

	status, body, err := c.send(ctx, http.MethodPost, "/api/token/refresh/", payload, "")
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &ServerError{Status: status, Message: serverMessage(body)}
	}

	var resp accessResponse
	if err := unmarshalBody(body, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

// RequestPasswordReset triggers the out-of-band reset email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	req := passwordResetRequest{Email: email}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("api: invalid email: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/password-reset/", req, nil)
}

// ConfirmPasswordReset completes the reset with the emailed uid and token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, uid, token, password string) error {
	req := passwordResetConfirmRequest{UID: uid, Token: token, Password: password}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("api: invalid reset input: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/password-reset/done/", req, nil)
}

// FinancialData fetches the full snapshot for the logged-in account.
func (c *Client) FinancialData(ctx context.Context) (*finance.FinancialData, error) {
	var resp financialDataResponse
	if err := c.do(ctx, http.MethodGet, "/api/user/financial_data/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.FinancialData, nil
}

// CreateTransaction records a transaction on the server.
func (c *Client) CreateTransaction(ctx context.Context, tx finance.Transaction) error {
	req := transactionRequest{
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Category:    tx.Category,
		Date:        tx.Date,
	}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("api: invalid transaction: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/create_transaction/", req, nil)
}

// ChangeBudget creates or updates a category's spending limit.
func (c *Client) ChangeBudget(ctx context.Context, category string, limit float64) error {
	req := changeBudgetRequest{Budget: budgetPayload{Category: category, Limit: limit}}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("api: invalid budget: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/change_budget/", req, nil)
}

// RemoveBudget deletes a category's budget.
func (c *Client) RemoveBudget(ctx context.Context, category string) error {
	req := removeBudgetRequest{BudgetName: category}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("api: invalid budget name: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/remove_budget/", req, nil)
}

// ResetMonth archives the current period and starts a fresh one.
func (c *Client) ResetMonth(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/reset_month/", nil, nil)
}
