package responses

import "github.com/unations/tax-engine/internal/taxerr"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error         string              `json:"error"`
	Code          string              `json:"code,omitempty"`
	Fields        []taxerr.FieldError `json:"fields,omitempty"`
	CorrelationID string              `json:"correlation_id,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status"`
	Stage  string `json:"stage,omitempty"`
}

// ListResponse wraps a collection
type ListResponse[T any] struct {
	Object string `json:"object"`
	Data   []T    `json:"data"`
	Count  int    `json:"count"`
}

// NewListResponse builds a list envelope, never rendering a null data array
func NewListResponse[T any](object string, data []T) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{Object: object, Data: data, Count: len(data)}
}
