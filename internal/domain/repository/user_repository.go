package repository

import "github.com/jhoicas/inventario-lite/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) (int64, error)
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
	Count() (int, error)
}

// SessionRepository sesión de fila única (id = 1): puntero al usuario
// conectado o NULL si no hay sesión.
type SessionRepository interface {
	CurrentUserID() (*int64, error)
	SetCurrentUser(userID *int64) error
}
