// Package portal defines the domain entity shapes exchanged with the portal
// backend. Semantics (commission math, loan eligibility, balances) are owned
// server-side; these types only carry what the client renders and keys on.
package portal

import "time"

// Member statuses as the backend spells them. The casing is uneven on the
// wire ("active" vs "Inactive" vs "Pending") and is preserved here because
// status values travel back into request paths and cache keys as data.
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "Inactive"
	MemberStatusPending  = "Pending"
)

// Member is a portal member account.
type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Status      string `json:"status"`
	SponsorID   string `json:"sponsor_id"`
	SponsorName string `json:"sponsor_name"`
	PackageID   string `json:"package_id"`
	PackageName string `json:"package_name"`
	JoinedAt    string `json:"joined_at"`
}

// Transaction is a ledger row. There is no server-side discriminated type;
// the classify package infers categories from the free-text fields.
type Transaction struct {
	ID              string  `json:"transaction_id"`
	Date            string  `json:"date"`
	TransactionType string  `json:"transaction_type"`
	Description     string  `json:"description"`
	BenefitType     string  `json:"benefit_type"`
	Credit          float64 `json:"credit"`
	Debit           float64 `json:"debit"`
	Status          string  `json:"status"`
	Level           int     `json:"level"`
	MemberID        string  `json:"member_id"`
}

// Voucher is a receipt or payment entry.
type Voucher struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Party  string  `json:"party"`
	Amount float64 `json:"amount"`
	Mode   string  `json:"mode"`
	Status string  `json:"status"`
}

// Ticket statuses.
const (
	TicketStatusPending = "pending"
	TicketStatusSolved  = "solved"
)

// Ticket is a support ticket raised by a member.
type Ticket struct {
	ID        string `json:"id"`
	MemberID  string `json:"member_id"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	Reply     string `json:"reply"`
	CreatedAt string `json:"created_at"`
}

// Reward-loan statuses.
const (
	LoanStatusProcessing = "Processing"
	LoanStatusApproved   = "Approved"
	LoanStatusRejected   = "Rejected"
)

// LoanRecord is a reward-loan request with its repayment position.
type LoanRecord struct {
	ID         string  `json:"id"`
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Amount     float64 `json:"amount"`
	DueAmount  float64 `json:"due_amount"`
	Status     string  `json:"status"`
	IssuedAt   string  `json:"issued_at"`
}

// WalletOverview is the wallet snapshot for a member.
type WalletOverview struct {
	MemberID        string  `json:"member_id"`
	Balance         float64 `json:"balance"`
	TotalCredit     float64 `json:"total_credit"`
	TotalDebit      float64 `json:"total_debit"`
	LoanOutstanding float64 `json:"loan_outstanding"`
	CanRepayLoan    bool    `json:"can_repay_loan"`
	CanWithdraw     bool    `json:"can_withdraw"`
}

// Epin is a package activation pin.
type Epin struct {
	Code        string `json:"code"`
	PackageID   string `json:"package_id"`
	PackageName string `json:"package_name"`
	Used        bool   `json:"used"`
	UsedBy      string `json:"used_by"`
	CreatedAt   string `json:"created_at"`
}

// EpinSummary aggregates pin counts per package.
type EpinSummary struct {
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Available int    `json:"available"`
	Pins      []Epin `json:"pins"`
}

// News is an announcement shown on the portal dashboard.
type News struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Holiday is a calendar entry.
type Holiday struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// CheckoutSession is issued by the payment gateway via the backend; the
// caller redirects the browser using the session id.
type CheckoutSession struct {
	OrderID     string  `json:"order_id"`
	SessionID   string  `json:"session_id"`
	Amount      float64 `json:"amount"`
	RedirectURL string  `json:"redirect_url"`
}

// ParseDate parses the backend's date strings, trying the formats observed
// on the wire. Zero time and false when none match.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
