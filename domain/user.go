package domain

import "time"

// Roles known to the platform. Authorization is exact-match membership,
// there is no hierarchy between roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an identity in the platform. The serialized form of
// this struct (without the password hash) is what the session cache
// stores as the per-user snapshot.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CourseIDs    []string  `json:"course_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasCourse reports whether the user already purchased the course.
func (u *User) HasCourse(courseID string) bool {
	if u == nil {
		return false
	}
	for _, id := range u.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// RequireRole enforces exact-match role membership. It never consults
// storage: the decision is a field comparison on the resolved identity.
func RequireRole(u *User, allowed ...string) error {
	if u == nil {
		return ErrNoSession
	}
	for _, role := range allowed {
		if u.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
