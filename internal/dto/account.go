package dto

import (
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Subtype     string             `json:"subtype"`
	Description string             `json:"description"`
}

// ListAccountsParams filters the account listing.
type ListAccountsParams struct {
	AccountType string `form:"type"`
	IsActive    *bool  `form:"isActive"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Subtype     string             `json:"subtype"`
	Description string             `json:"description"`
	Balance     decimal.Decimal    `json:"balance"`
	IsActive    bool               `json:"isActive"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: a.AccountType,
		Subtype:     a.Subtype,
		Description: a.Description,
		Balance:     a.Balance,
		IsActive:    a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
