package request

// CreateClassificationRequest represents the request body for creating a classification
type CreateClassificationRequest struct {
	Name string `json:"name"`
}
