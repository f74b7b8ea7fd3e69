package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesión de fila única (id = 1) sobre PostgreSQL. El puntero al
// usuario conectado es NULL cuando nadie inició sesión.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// CurrentUserID id del usuario conectado; nil si no hay sesión (fila ausente
// o puntero NULL).
func (r *SessionRepo) CurrentUserID() (*int64, error) {
	var userID *int64
	err := r.q.QueryRow(context.Background(),
		`SELECT current_user_id FROM user_session WHERE id = 1`,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}

// SetCurrentUser fija (o limpia con nil) el puntero de sesión.
func (r *SessionRepo) SetCurrentUser(userID *int64) error {
	sql := `
		INSERT INTO user_session (id, current_user_id)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET current_user_id = EXCLUDED.current_user_id`
	if _, err := r.q.Exec(context.Background(), sql, userID); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}
