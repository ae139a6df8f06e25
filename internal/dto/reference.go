package dto

import "github.com/shopspring/decimal"

// CreateNominalRequest adds an account to the chart of accounts.
type CreateNominalRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	ParentID string `json:"parentID,omitempty"`
	Type     string `json:"type" binding:"required,oneof=pl b"`
}

// CreateVatCodeRequest adds a VAT code.
type CreateVatCodeRequest struct {
	Code       string          `json:"code" binding:"required,max=10"`
	Name       string          `json:"name" binding:"required,max=100"`
	Rate       decimal.Decimal `json:"rate"`
	Registered bool            `json:"registered"`
}

// CreateCashBookRequest adds a bank or cash account.
type CreateCashBookRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	NominalID string `json:"nominalID" binding:"required"`
}

// CreatePartyRequest adds a supplier or customer.
type CreatePartyRequest struct {
	Code  string `json:"code" binding:"required,max=20"`
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
}
