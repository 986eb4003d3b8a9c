package dto

import "time"

type WalletResponseDTO struct {
	UserID   int    `json:"user_id" example:"7"`
	Balance  int64  `json:"balance" example:"1500"`
	Currency string `json:"currency" example:"CRD"`
}

type CreateWalletRequestDTO struct {
	Currency string `json:"currency" example:"CRD"`
}

type DepositRequestDTO struct {
	Amount      int64  `json:"amount" example:"500" minimum:"1" maximum:"1000000"`
	Description string `json:"description,omitempty" example:"Top-up"`
}

type ReferenceDTO struct {
	Kind string `json:"kind" example:"live_session"`
	ID   int    `json:"id" example:"12"`
}

type LedgerEntryResponseDTO struct {
	ID           int            `json:"id" example:"301"`
	Amount       int64          `json:"amount" example:"-5"`
	BalanceAfter int64          `json:"balance_after" example:"1495"`
	Type         string         `json:"type" example:"gift_sent"`
	Reference    *ReferenceDTO  `json:"reference,omitempty"`
	Description  string         `json:"description,omitempty" example:"Sent Rose"`
	Meta         map[string]any `json:"meta,omitempty"`
	CreatedAt    time.Time      `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
}
