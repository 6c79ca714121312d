package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, role, full_name, email, password_hash, mobile, address,
		business_name, business_document, is_active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Acepta pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y completa ID y timestamps.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (role, full_name, email, password_hash, mobile, address,
			business_name, business_document, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		user.Role, user.FullName, user.Email, user.PasswordHash,
		nullIfEmpty(user.Mobile), nullIfEmpty(user.Address),
		nullIfEmpty(user.BusinessName), nullIfEmpty(user.BusinessDocument),
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", translate(err))
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", translate(err))
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", translate(err))
	}
	return u, nil
}

// List lista usuarios con filtro por rol y búsqueda, más el total sin paginar.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Role != "" {
		args = append(args, f.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(full_name ILIKE $%d OR email ILIKE $%d OR COALESCE(business_name, '') ILIKE $%d)", n, n, n))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", translate(err))
	}

	args = append(args, limitArg(f.Limit), f.Offset)
	query := `SELECT ` + userColumns + ` FROM users` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", translate(err))
	}
	defer rows.Close()

	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// UpdateStatus activa o desactiva una cuenta.
func (r *UserRepo) UpdateStatus(ctx context.Context, id int64, active bool) error {
	return r.exec(ctx, "update user status",
		`UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
}

// UpdateRole corrige el rol de una cuenta.
func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	return r.exec(ctx, "update user role",
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepo) exec(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u                                    entity.User
		mobile, address, business, businessD *string
	)
	err := row.Scan(
		&u.ID, &u.Role, &u.FullName, &u.Email, &u.PasswordHash,
		&mobile, &address, &business, &businessD,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Mobile, u.Address = deref(mobile), deref(address)
	u.BusinessName, u.BusinessDocument = deref(business), deref(businessD)
	return &u, nil
}
