package domain

import "time"

const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// ValidRole reports whether userType is one of the closed role set.
func ValidRole(userType string) bool {
	return userType == RoleAdmin || userType == RoleStaff
}

// User models an account in the system.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	UserType     string    `json:"user_type"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
