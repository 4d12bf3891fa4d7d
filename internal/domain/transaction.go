package domain

import (
	"time"

	"github.com/google/uuid"
)

// Money is an (amount, currency) pair. Amount is the minor unit (cents).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// TransactionDirection classifies the flow of a transaction
type TransactionDirection string

const (
	DirectionCredit   TransactionDirection = "CREDIT"
	DirectionDebit    TransactionDirection = "DEBIT"
	DirectionTransfer TransactionDirection = "TRANSFER"
)

// Transaction is an immutable input to the core (§3)
type Transaction struct {
	TransactionID   uuid.UUID             `json:"transaction_id" db:"transaction_id"`
	Amount          Money                 `json:"amount" db:"-"`
	Direction       TransactionDirection  `json:"direction" db:"direction"`
	SourceAccountID uuid.UUID             `json:"source_account_id" db:"source_account_id"`
	TargetAccountID uuid.UUID             `json:"target_account_id" db:"target_account_id"`
	CustomerID      uuid.UUID             `json:"customer_id" db:"customer_id"`
	Timestamp       time.Time             `json:"timestamp" db:"timestamp"`
	Channel         string                `json:"channel" db:"channel"`
	Merchant        string                `json:"merchant,omitempty" db:"merchant"`
	Counterparty    string                `json:"counterparty,omitempty" db:"counterparty"`
	CounterpartyID  uuid.UUID             `json:"counterparty_id,omitempty" db:"counterparty_id"`
	CountryCode     string                `json:"country_code" db:"country_code"`
	IsCash          bool                  `json:"is_cash" db:"is_cash"`
}

// CustomerContext is the opaque, read-only view of sliding-window counters
// the rule engine's evaluators consume. The caller computes it; the engine
// never owns state between calls (spec.md §4.4).
type CustomerContext struct {
	CustomerID               uuid.UUID
	RecentBelowThresholdCount int       // within the 1-day structuring window
	RecentTransactionTotal    int64
	CurrentVelocity           float64 // transactions per unit window
	BaselineVelocity          float64
	LastCreditAmount          int64
	LastCreditAt              *time.Time
	LastActivityAt            *time.Time
	HighRiskCountries         map[string]bool
}
