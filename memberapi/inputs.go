package memberapi

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// WithdrawInput requests a wallet withdrawal.
type WithdrawInput struct {
	MemberID string  `json:"-"`
	Amount   float64 `json:"amount"`
}

// Validate implements the pre-dispatch check; invalid input never reaches
// the network or the cache layer.
func (i WithdrawInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MemberID, validation.Required),
		validation.Field(&i.Amount, validation.Required, validation.Min(0.01)),
	)
}

// ApproveWithdrawalInput approves a pending withdrawal.
type ApproveWithdrawalInput struct {
	TransactionID string `json:"-"`
}

// Validate implements the pre-dispatch check.
func (i ApproveWithdrawalInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.TransactionID, validation.Required),
	)
}

// RepayLoanInput pays down a member's outstanding loan.
type RepayLoanInput struct {
	MemberID string  `json:"-"`
	Amount   float64 `json:"amount"`
}

// Validate implements the pre-dispatch check.
func (i RepayLoanInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MemberID, validation.Required),
		validation.Field(&i.Amount, validation.Required, validation.Min(0.01)),
	)
}

// PaymentOrderInput creates a gateway payment order.
type PaymentOrderInput struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
	Purpose  string  `json:"purpose"`
}

// Validate implements the pre-dispatch check.
func (i PaymentOrderInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MemberID, validation.Required),
		validation.Field(&i.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&i.Purpose, validation.Required),
	)
}
