package dto

// CreateOrderRequest is the POST /orders payload. Amount is a pointer so
// a missing number can be told apart from zero.
type CreateOrderRequest struct {
	Customer string   `json:"customer"`
	Amount   *float64 `json:"amount"`
	Status   string   `json:"status"`
}

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	ID        int64   `json:"id"`
	Customer  string  `json:"customer"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// Pagination describes the page window of a listing response. Total
// counts every matching record regardless of the window.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// AmountRange echoes the effective amount filter; absent bounds are null.
type AmountRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// DateRange echoes the effective date filter; absent bounds are null.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// ListFilters echoes the post-normalization filters applied to a listing.
type ListFilters struct {
	Status      *string     `json:"status"`
	AmountRange AmountRange `json:"amountRange"`
	DateRange   DateRange   `json:"dateRange"`
}

// ListMetadata bundles pagination and filter echoes.
type ListMetadata struct {
	Pagination Pagination  `json:"pagination"`
	Filters    ListFilters `json:"filters"`
}

// OrderListResponse is the GET /orders envelope.
type OrderListResponse struct {
	Data     []OrderResponse `json:"data"`
	Metadata ListMetadata    `json:"metadata"`
}
