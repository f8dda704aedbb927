package dto

import (
	"github.com/iho/papertrade/internal/usecase"
)

// RegisterRequest represents a request to register an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TradeRequest represents a buy or sell order.
type TradeRequest struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *TradeRequest) ToUseCaseInput(accountID string) usecase.TradeInput {
	return usecase.TradeInput{
		AccountID: accountID,
		Symbol:    r.Symbol,
		Shares:    r.Shares,
	}
}
