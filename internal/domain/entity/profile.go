package entity

import (
	"time"
)

const (
	RoleBuyer  = "buyer"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

type Profile struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	FullName  string    `json:"full_name" firestore:"fullName"`
	Username  string    `json:"username" firestore:"username"`
	Role      string    `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Session is the authenticated caller for one request.
type Session struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// ActorID returns the uid for audit entries, or empty for anonymous callers.
func (s *Session) ActorID() string {
	if s == nil {
		return ""
	}
	return s.UID
}

// AuthToken is the part of a verified ID token the API relies on.
type AuthToken struct {
	UID   string
	Email string
	Role  string
}
