package adminapi

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portal-client/portal"
)

// UpdateMemberStatusInput moves a member between lifecycle statuses.
type UpdateMemberStatusInput struct {
	MemberID string `json:"-"`
	Status   string `json:"status"`
}

// Validate implements the pre-dispatch check; invalid input never reaches
// the network or the cache layer.
func (i UpdateMemberStatusInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MemberID, validation.Required),
		validation.Field(&i.Status, validation.Required,
			validation.In(portal.MemberStatusActive, portal.MemberStatusInactive, portal.MemberStatusPending)),
	)
}

// ReplyTicketInput answers a support ticket and marks it solved.
type ReplyTicketInput struct {
	TicketID string `json:"-"`
	Reply    string `json:"reply"`
}

// Validate implements the pre-dispatch check.
func (i ReplyTicketInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.TicketID, validation.Required),
		validation.Field(&i.Reply, validation.Required, validation.Length(1, 2000)),
	)
}

// NewsInput creates or replaces an announcement.
type NewsInput struct {
	NewsID string `json:"-"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Validate implements the pre-dispatch check.
func (i NewsInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&i.Body, validation.Required),
	)
}

// HolidayInput creates a calendar entry.
type HolidayInput struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Validate implements the pre-dispatch check.
func (i HolidayInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required),
		validation.Field(&i.Date, validation.Required, validation.Date("2006-01-02")),
	)
}

// GenerateEpinsInput requests a batch of package pins.
type GenerateEpinsInput struct {
	PackageID string `json:"package_id"`
	Count     int    `json:"count"`
	BatchRef  string `json:"batch_ref"`
}

// Validate implements the pre-dispatch check.
func (i GenerateEpinsInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.PackageID, validation.Required),
		validation.Field(&i.Count, validation.Required, validation.Min(1), validation.Max(500)),
	)
}

// Reward-loan actions accepted by the status-transition endpoint.
const (
	RewardLoanActionApprove = "approve"
	RewardLoanActionReject  = "reject"
)

// RewardLoanActionInput applies an approve/reject transition to a member's
// reward loan.
type RewardLoanActionInput struct {
	MemberID string `json:"-"`
	Action   string `json:"-"`
}

// Validate implements the pre-dispatch check.
func (i RewardLoanActionInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MemberID, validation.Required),
		validation.Field(&i.Action, validation.Required,
			validation.In(RewardLoanActionApprove, RewardLoanActionReject)),
	)
}
