package request

type CreateTransactionRequest struct {
	AssetID          string  `json:"assetId"`
	ClassificationID string  `json:"classificationId"`
	Kind             string  `json:"kind"`
	Value            float64 `json:"value"`
	Currency         string  `json:"currency"`
	Date             string  `json:"date"`
	Done             bool    `json:"done"`
}

type UpdateTransactionRequest struct {
	AssetID          *string  `json:"assetId,omitempty"`
	ClassificationID *string  `json:"classificationId,omitempty"`
	Kind             *string  `json:"kind,omitempty"`
	Value            *float64 `json:"value,omitempty"`
	Currency         *string  `json:"currency,omitempty"`
	Date             *string  `json:"date,omitempty"`
	Done             *bool    `json:"done,omitempty"`
}
