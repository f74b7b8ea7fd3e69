package entity

import "time"

// Role nivel de permisos de un usuario autenticado.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClerk  Role = "CLERK"
	RoleViewer Role = "VIEWER"
)

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClerk, RoleViewer:
		return true
	}
	return false
}

// User usuario del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionUser usuario de la sesión actual. La sesión es un puntero único al
// usuario conectado; su ausencia (nil) significa "sin iniciar sesión" y se
// distingue de un rol insuficiente.
type SessionUser struct {
	UserID   int64
	Username string
	Role     Role
}
