package models

// OutboundMessageRequest represents a manual WhatsApp notification sent through the API.
type OutboundMessageRequest struct {
	To         string `json:"to"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// ComputeRequest carries already-fetched records for a pure reconciliation run.
type ComputeRequest struct {
	Records                    []StockRecord `json:"records"`
	PreviousFeedConsumedAmount float64       `json:"previousFeedConsumedAmount"`
}
