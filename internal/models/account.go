package models

// Session describes the locally cached account identity. A guest session
// has no remote identity and is never synced.
type Session struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Guest  bool   `json:"guest"`
}

// Registered reports whether the session belongs to a registered account
// with a resolvable identity.
func (s Session) Registered() bool {
	return !s.Guest && s.UserID != ""
}

// Subscription is the entitlement metadata attached to every sync payload.
type Subscription struct {
	Premium bool   `json:"premium"`
	Tier    string `json:"tier,omitempty"`
	Source  string `json:"source,omitempty"`
}
