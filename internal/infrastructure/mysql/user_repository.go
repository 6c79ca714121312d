package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, role, full_name, email, password_hash, mobile, address,
		business_name, business_document, is_active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre MySQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Acepta *sql.DB o *sql.Tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y completa el ID asignado por AUTO_INCREMENT.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (role, full_name, email, password_hash, mobile, address,
			business_name, business_document, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		user.Role, user.FullName, user.Email, user.PasswordHash,
		nullIfEmpty(user.Mobile), nullIfEmpty(user.Address),
		nullIfEmpty(user.BusinessName), nullIfEmpty(user.BusinessDocument),
		user.IsActive,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", translate(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user: last insert id: %w", err)
	}
	now := time.Now()
	user.ID = id
	user.CreatedAt, user.UpdatedAt = now, now
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", translate(err))
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email))
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
		conds = append(conds, "role = ?")
		args = append(args, f.Role)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, "(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(COALESCE(business_name, '')) LIKE ?)")
		args = append(args, like, like, like)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", translate(err))
	}

	args = append(args, limitArg(f.Limit), f.Offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
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
	return r.exec(ctx, "update user status", `UPDATE users SET is_active = ? WHERE id = ?`, active, id)
}

// UpdateRole corrige el rol de una cuenta.
func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	return r.exec(ctx, "update user role", `UPDATE users SET role = ? WHERE id = ?`, role, id)
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, "delete user", `DELETE FROM users WHERE id = ?`, id)
}

// exec ejecuta una mutación por ID. MySQL reporta 0 filas afectadas también cuando
// el valor no cambia, así que ante 0 se confirma la existencia del ID.
func (r *UserRepo) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if err := rowsAffectedOrNotFound(res); !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	id := args[len(args)-1]
	var one int
	err = r.q.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u                                    entity.User
		mobile, address, business, businessD sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Role, &u.FullName, &u.Email, &u.PasswordHash,
		&mobile, &address, &business, &businessD,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Mobile, u.Address = mobile.String, address.String
	u.BusinessName, u.BusinessDocument = business.String, businessD.String
	return &u, nil
}
