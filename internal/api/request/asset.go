package request

// CreateAssetRequest represents the request body for registering an asset
type CreateAssetRequest struct {
	Name             string `json:"name"`
	ClassificationID string `json:"classificationId"`
	Currency         string `json:"currency"`
}

type UpdateAssetRequest struct {
	Name             *string `json:"name,omitempty"`
	ClassificationID *string `json:"classificationId,omitempty"`
	Currency         *string `json:"currency,omitempty"`
}
