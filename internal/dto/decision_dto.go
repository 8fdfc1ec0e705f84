package dto

// CreateDecisionRequest appends one entry to a product's decision ledger.
// Kind validation (one of the four enumerated decisions) and the trimmed
// 3-char reason floor happen in the service, not in binding tags, so the
// client gets a domain message rather than a tag name.
type CreateDecisionRequest struct {
	Decision  string  `json:"decision"   validate:"required"`
	Reason    string  `json:"reason"     validate:"required"`
	DecidedBy *string `json:"decided_by"`
}

type DecisionResponse struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Decision  string  `json:"decision"`
	Reason    string  `json:"reason"`
	DecidedBy *string `json:"decided_by"`
	CreatedAt string  `json:"created_at"`
}
