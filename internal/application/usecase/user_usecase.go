package usecase

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-lite/internal/application/authz"
	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

// UserUseCase gestión de usuarios. Solo ADMIN pasa la puerta.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Create da de alta un usuario con el rol indicado.
func (uc *UserUseCase) Create(session *entity.SessionUser, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := authz.Require(session, authz.OpManageUsers); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.NewValidationError("username", "es requerido")
	}
	if in.Password == "" {
		return nil, domain.NewValidationError("password", "es requerido")
	}
	role := entity.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "debe ser ADMIN, CLERK o VIEWER")
	}

	existing, err := uc.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := uc.users.Create(user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return toUserResponse(user), nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(session *entity.SessionUser) (*dto.UserListResponse, error) {
	if err := authz.Require(session, authz.OpManageUsers); err != nil {
		return nil, err
	}
	users, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	resp := &dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Items = append(resp.Items, *toUserResponse(u))
	}
	return resp, nil
}

// SetActive activa o desactiva un usuario.
func (uc *UserUseCase) SetActive(session *entity.SessionUser, id int64, active bool) (*dto.UserResponse, error) {
	if err := authz.Require(session, authz.OpManageUsers); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}
