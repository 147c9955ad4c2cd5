package request

// SetProviderTokenRequest carries the quote provider token. The token is
// encrypted before it is stored.
type SetProviderTokenRequest struct {
	Token string `json:"token"`
}
