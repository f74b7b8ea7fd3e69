package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/usecase"
	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
	pkgjwt "github.com/jhoicas/inventario-lite/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de usuarios y sesión de fila única
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) Create(user *entity.User) (int64, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, domain.ErrDuplicate
		}
	}
	r.nextID++
	cp := *user
	cp.ID = r.nextID
	r.users[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	r.users[cp.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.users {
		cp := *u
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeUserRepo) Count() (int, error) { return len(r.users), nil }

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

type fakeSessionRepo struct {
	current *int64
}

func (r *fakeSessionRepo) CurrentUserID() (*int64, error) { return r.current, nil }
func (r *fakeSessionRepo) SetCurrentUser(userID *int64) error {
	r.current = userID
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "auth-usecase-test-secret"

func newAuthFixture(t *testing.T) (*fakeUserRepo, *fakeSessionRepo, *usecase.AuthUseCase) {
	t.Helper()
	users := newFakeUserRepo()
	sessions := &fakeSessionRepo{}
	uc := usecase.NewAuthUseCase(users, sessions, usecase.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "test",
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	_, err = users.Create(&entity.User{
		Username: "ana", PasswordHash: string(hash), Role: entity.RoleClerk,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	return users, sessions, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	_, sessions, uc := newAuthFixture(t)

	out, err := uc.Login(dto.LoginRequest{Username: " ana ", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "ana", out.User.Username)
	assert.Equal(t, "CLERK", out.User.Role)

	userID, username, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "ana", username)
	assert.Equal(t, "CLERK", role)

	require.NotNil(t, sessions.current, "login fija el puntero de sesión")
	assert.Equal(t, out.User.ID, *sessions.current)
}

// Usuario inexistente, password incorrecto y usuario inactivo devuelven el
// mismo error: la respuesta no filtra cuál fue la causa.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	users, _, uc := newAuthFixture(t)

	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(dto.LoginRequest{Username: "ana", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(dto.LoginRequest{Username: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Desactivar y reintentar con la password correcta.
	u, err := users.GetByUsername("ana")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, users.Update(u))

	_, err = uc.Login(dto.LoginRequest{Username: "ana", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials,
		"usuario inactivo no inicia sesión")
}

func TestLogout_LimpiaSesion(t *testing.T) {
	_, sessions, uc := newAuthFixture(t)

	_, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "secret123"})
	require.NoError(t, err)
	require.NotNil(t, sessions.current)

	require.NoError(t, uc.Logout())
	assert.Nil(t, sessions.current)

	_, err = uc.CurrentUser()
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCurrentUser(t *testing.T) {
	_, _, uc := newAuthFixture(t)

	_, err := uc.CurrentUser()
	assert.ErrorIs(t, err, domain.ErrUnauthenticated, "sin login no hay sesión")

	login, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "secret123"})
	require.NoError(t, err)

	current, err := uc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, current.ID)
	assert.Equal(t, "ana", current.Username)
}

// ──────────────────────────────────────────────────────────────────────────────
// UserUseCase — alta y gestión
// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_SoloAdmin(t *testing.T) {
	users := newFakeUserRepo()
	uc := usecase.NewUserUseCase(users)

	in := dto.CreateUserRequest{Username: "nuevo", Password: "pw", Role: "viewer"}

	_, err := uc.Create(clerkSession(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Create(adminSession(), in)
	require.NoError(t, err)
	assert.Equal(t, "VIEWER", out.Role, "el rol se normaliza a mayúsculas")
	assert.True(t, out.IsActive)

	stored, err := users.GetByUsername("nuevo")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")),
		"la password se guarda como hash bcrypt")
}

func TestUserCreate_Validaciones(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	cases := []struct {
		name  string
		in    dto.CreateUserRequest
		field string
	}{
		{"username vacío", dto.CreateUserRequest{Password: "pw", Role: "ADMIN"}, "username"},
		{"password vacía", dto.CreateUserRequest{Username: "x", Role: "ADMIN"}, "password"},
		{"rol inválido", dto.CreateUserRequest{Username: "x", Password: "pw", Role: "ROOT"}, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(adminSession(), tc.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestUserCreate_UsernameDuplicado(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Create(adminSession(), dto.CreateUserRequest{Username: "ana", Password: "pw", Role: "CLERK"})
	require.NoError(t, err)

	_, err = uc.Create(adminSession(), dto.CreateUserRequest{Username: "ana", Password: "pw2", Role: "VIEWER"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserSetActive(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	created, err := uc.Create(adminSession(), dto.CreateUserRequest{Username: "ana", Password: "pw", Role: "CLERK"})
	require.NoError(t, err)

	out, err := uc.SetActive(adminSession(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	_, err = uc.SetActive(adminSession(), 999, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SetActive(viewerSession(), created.ID, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
