package domain

import "time"

// UserRole classifies the privilege level of an account.
type UserRole int16

const (
	RoleNormal UserRole = 0
	RoleAdmin  UserRole = 1
)

// UserStatus represents the lifecycle state of an account.
type UserStatus int16

const (
	StatusActive   UserStatus = 0
	StatusDisabled UserStatus = 1
)

// SessionKeyLoginState is the fixed session key under which the
// authenticated user snapshot is stored at login.
const SessionKeyLoginState = "user:login:state"

// User is the full account record as persisted. PasswordDigest and the
// soft-delete flag never leave the storage boundary; call Sanitize before
// returning a user to any caller.
type User struct {
	ID             int64      `json:"id"`
	Account        string     `json:"account"`
	PasswordDigest string     `json:"-"`
	Username       string     `json:"username,omitempty"`
	AvatarID       int64      `json:"avatar_id,omitempty"`
	Gender         int16      `json:"gender"`
	Phone          string     `json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Status         UserStatus `json:"status"`
	Role           UserRole   `json:"role"`
	Deleted        bool       `json:"-"`
}

// SanitizedUser is the privacy-safe projection of a User. It is the only
// user shape returned to callers or written into a session.
type SanitizedUser struct {
	ID        int64      `json:"id"`
	Account   string     `json:"account"`
	Username  string     `json:"username,omitempty"`
	AvatarID  int64      `json:"avatar_id,omitempty"`
	Gender    int16      `json:"gender"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Status    UserStatus `json:"status"`
	Role      UserRole   `json:"role"`
}

// Sanitize projects the user into its privacy-safe form. The password
// digest and the soft-delete flag are dropped unconditionally.
func (u *User) Sanitize() *SanitizedUser {
	return &SanitizedUser{
		ID:        u.ID,
		Account:   u.Account,
		Username:  u.Username,
		AvatarID:  u.AvatarID,
		Gender:    u.Gender,
		Phone:     u.Phone,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Status:    u.Status,
		Role:      u.Role,
	}
}

// UserAvatar is a stored avatar image reference, linked from User.AvatarID.
type UserAvatar struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
