// Package authz implementa la puerta de control de acceso: una función pura
// (rol, operación) → permitir/denegar, sin estado y sin tocar la base de datos.
package authz

import (
	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
)

// Operation operación protegida del ledger.
type Operation string

const (
	OpReadInventory  Operation = "read_inventory"
	OpManageProducts Operation = "manage_products"
	OpAppendMovement Operation = "append_movement"
	OpManageUsers    Operation = "manage_users"
)

// policy matriz rol → operaciones permitidas. VIEWER solo lee; CLERK además
// registra movimientos; ADMIN puede todo, incluida la gestión de usuarios.
var policy = map[entity.Role]map[Operation]bool{
	entity.RoleAdmin: {
		OpReadInventory:  true,
		OpManageProducts: true,
		OpAppendMovement: true,
		OpManageUsers:    true,
	},
	entity.RoleClerk: {
		OpReadInventory:  true,
		OpAppendMovement: true,
	},
	entity.RoleViewer: {
		OpReadInventory: true,
	},
}

// Require devuelve nil si la sesión puede ejecutar la operación.
// Sin sesión → ErrUnauthenticated ("inicia sesión"); rol insuficiente →
// ErrForbidden. El llamador debe poder distinguir ambos casos.
func Require(session *entity.SessionUser, op Operation) error {
	if session == nil {
		return domain.ErrUnauthenticated
	}
	if policy[session.Role][op] {
		return nil
	}
	return domain.ErrForbidden
}

// Allowed variante booleana, útil para ocultar acciones en la capa de interfaz.
func Allowed(role entity.Role, op Operation) bool {
	return policy[role][op]
}
