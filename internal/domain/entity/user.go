package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario con acceso al panel (la "sesión" del negocio).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	Role         string // admin, vendedor
	CreatedAt    time.Time
}
