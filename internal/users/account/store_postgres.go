// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mquinde/devfolio/internal/platform/database/schema"
	"github.com/mquinde/devfolio/internal/platform/dberr"
	"github.com/mquinde/devfolio/internal/users/auth"
)

// PostgresRepository implements [Repository] against users.account.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func accountColumns() string {
	account := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		account.ID, account.Name, account.Email, account.Password, account.Role,
		account.AvatarURL, account.Bio, account.Website, account.IsActive,
		account.LastLoginAt, account.CreatedAt, account.UpdatedAt,
	)
}

func scanAccount(row interface{ Scan(...any) error }, user *auth.User) error {
	return row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.AvatarURL, &user.Bio, &user.Website, &user.IsActive,
		&user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
}

// filterSQL builds the WHERE clause for the admin listing. Only trusted
// column references appear in the SQL text; values travel as placeholders.
func filterSQL(filter Filter) (string, []any) {
	account := schema.UserAccount
	where := ""
	args := []any{}
	and := func() string {
		if where == "" {
			return " WHERE "
		}
		return " AND "
	}

	if filter.Role != "" {
		args = append(args, filter.Role)
		where += and() + fmt.Sprintf("%s = $%d", account.Role, len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += and() + fmt.Sprintf("%s = $%d", account.IsActive, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += and() + fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)",
			account.Name, len(args), account.Email, len(args))
	}

	return where, args
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]auth.User, int, error) {
	account := schema.UserAccount
	where, args := filterSQL(filter)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, account.Table) + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, accountColumns(), account.Table) +
		where +
		fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
			account.CreatedAt, account.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]auth.User, 0)
	for rows.Next() {
		var user auth.User
		if err := scanAccount(rows, &user); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, total, nil
}

func (repository *PostgresRepository) Stats(context context.Context) (*Stats, error) {
	account := schema.UserAccount
	query := fmt.Sprintf(`
		SELECT
			count(*),
			count(*) FILTER (WHERE %s = TRUE),
			count(*) FILTER (WHERE %s = FALSE),
			count(*) FILTER (WHERE %s = 'admin'),
			count(*) FILTER (WHERE %s = 'user')
		FROM %s
	`,
		account.IsActive, account.IsActive, account.Role, account.Role, account.Table,
	)

	stats := &Stats{}
	err := repository.db.QueryRow(context, query).Scan(
		&stats.Total, &stats.Active, &stats.Inactive, &stats.Admins, &stats.Users,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "user_stats")
	}

	return stats, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	account := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), account.Table, account.ID)

	user := &auth.User{}
	if err := scanAccount(repository.db.QueryRow(context, query, id), user); err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}
	return user, nil
}

func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	account := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		account.Table,
		account.Name, account.Role, account.IsActive,
		account.UpdatedAt, account.ID, account.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Name, user.Role, user.IsActive,
	).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_user")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	account := schema.UserAccount
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, account.Table, account.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
