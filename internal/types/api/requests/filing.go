package requests

import "time"

// FileReturnRequest represents the request to prepare a Draft return. When
// start and end dates are omitted they are derived from period.
type FileReturnRequest struct {
	EntityID   string     `json:"entity_id" binding:"required"`
	ReturnType string     `json:"return_type" binding:"required,oneof=monthly quarterly annual"`
	Period     string     `json:"period" binding:"required"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// BatchFileReturnsRequest queues the same period close for many entities
type BatchFileReturnsRequest struct {
	EntityIDs   []string `json:"entity_ids" binding:"required,min=1"`
	ReturnType  string   `json:"return_type" binding:"required,oneof=monthly quarterly annual"`
	Period      string   `json:"period" binding:"required"`
	RequestedBy string   `json:"requested_by,omitempty"`
}

// MarkReadyRequest records the reviewer of a Draft return
type MarkReadyRequest struct {
	ReviewedBy string `json:"reviewed_by" binding:"required"`
}

// SubmitReturnRequest records the approver of a filing
type SubmitReturnRequest struct {
	ApprovedBy string `json:"approved_by" binding:"required"`
}
