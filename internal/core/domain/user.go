package domain

// UserRole is the closed set of application roles.
type UserRole string

const (
	RoleAdmin            UserRole = "admin"
	RoleDirecteurGeneral UserRole = "directeur_general"
	RoleDirecteur        UserRole = "directeur"
)

// User is an application user (director or administrator).
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
