package entity

// RegisterFlash is the one-time registration outcome carried across the
// POST /register redirect for a single session.
type RegisterFlash struct {
	Status   bool   `json:"status"`
	Username string `json:"username,omitempty"`
}
