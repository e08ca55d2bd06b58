package domain

import "time"

// AuthEventAction names the auth operation an audit record describes.
type AuthEventAction string

const (
	ActionRegister AuthEventAction = "register"
	ActionLogin    AuthEventAction = "login"
	ActionLogout   AuthEventAction = "logout"
)

// AuthEvent is one entry in the authentication audit trail.
type AuthEvent struct {
	ID        int64           `json:"id"`
	Account   string          `json:"account"`
	Action    AuthEventAction `json:"action"`
	Success   bool            `json:"success"`
	Reason    string          `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
