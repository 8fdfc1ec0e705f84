package model

import "time"

// Decision kinds a human operator can record for a product.
const (
	DecisionApproveTest   = "approve_test"
	DecisionApproveImport = "approve_import"
	DecisionReject        = "reject"
	DecisionNeedsData     = "needs_data"
)

// ValidDecisionKind reports whether kind is one of the four enumerated values.
func ValidDecisionKind(kind string) bool {
	switch kind {
	case DecisionApproveTest, DecisionApproveImport, DecisionReject, DecisionNeedsData:
		return true
	}
	return false
}

// ProductDecision is one entry in the append-only decision ledger.
// There is no update or delete: corrections append a new row, and "latest"
// is always the most recently created one (tie-break: highest id).
type ProductDecision struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	Decision  string `gorm:"not null"`
	Reason    string `gorm:"not null"`
	DecidedBy *string
	CreatedAt time.Time
}
