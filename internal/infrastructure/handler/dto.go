package handler

// RateSampleResponse is a rate together with the date it was observed
type RateSampleResponse struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// OverviewResponse represents the response for the overview endpoint
type OverviewResponse struct {
	CurrencyFrom string             `json:"currency_from"`
	CurrencyTo   string             `json:"currency_to"`
	DateFrom     string             `json:"date_from"`
	DateTo       string             `json:"date_to"`
	MeanRate     float64            `json:"mean_rate"`
	MinRate      RateSampleResponse `json:"min_rate"`
	MaxRate      RateSampleResponse `json:"max_rate"`
	Notice       string             `json:"notice,omitempty"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
