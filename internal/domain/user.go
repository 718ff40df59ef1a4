package domain

// User is the authenticated caller extracted from the request token.
type User struct {
	ProfileID string `json:"profileId"`
	Name      string `json:"name"`
}
