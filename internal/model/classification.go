package model

// Classification represents an asset classification (e.g. fixed income,
// stocks, crypto). Profitability rows are grouped by classification.
type Classification struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Asset represents an entry in the asset registry.
type Asset struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ClassificationID string   `json:"classificationId"`
	Currency         Currency `json:"currency"`
}
