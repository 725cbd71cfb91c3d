package skill

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/database/schema"
	"github.com/mquinde/devfolio/internal/platform/dberr"
)

// listColumns maps listing field names onto core.skill columns.
var listColumns = map[string]string{
	"id":          schema.RefSkill.ID,
	"name":        schema.RefSkill.Name,
	"category":    schema.RefSkill.Category,
	"proficiency": schema.RefSkill.Proficiency,
	"isActive":    schema.RefSkill.IsActive,
	"sortOrder":   schema.RefSkill.SortOrder,
	"createdAt":   schema.RefSkill.CreatedAt,
	"updatedAt":   schema.RefSkill.UpdatedAt,
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func skillColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.RefSkill.ID, schema.RefSkill.Name, schema.RefSkill.Category,
		schema.RefSkill.Proficiency, schema.RefSkill.Icon, schema.RefSkill.Color,
		schema.RefSkill.YearsOfExperience, schema.RefSkill.Description, schema.RefSkill.IsActive,
		schema.RefSkill.SortOrder, schema.RefSkill.CreatedBy, schema.RefSkill.CreatedAt,
		schema.RefSkill.UpdatedAt,
	)
}

func scanSkill(row interface{ Scan(...any) error }, s *Skill) error {
	return row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Proficiency, &s.Icon, &s.Color,
		&s.YearsOfExperience, &s.Description, &s.IsActive, &s.SortOrder,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
}

func (repository *PostgresRepository) Count(context context.Context, predicate listing.Predicate) (int, error) {
	where, args, _, err := listing.WhereSQL(predicate, listColumns, 1)
	if err != nil {
		return 0, dberr.Wrap(err, "count_skills")
	}

	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.RefSkill.Table) + where

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_skills")
	}
	return total, nil
}

func (repository *PostgresRepository) Find(context context.Context, predicate listing.Predicate, order listing.OrderSpec, limit, offset int) ([]Skill, error) {
	where, args, nextArg, err := listing.WhereSQL(predicate, listColumns, 1)
	if err != nil {
		return nil, dberr.Wrap(err, "find_skills")
	}
	orderBy, err := listing.OrderSQL(order, listColumns)
	if err != nil {
		return nil, dberr.Wrap(err, "find_skills")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, skillColumns(), schema.RefSkill.Table) +
		where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", nextArg, nextArg+1)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find_skills")
	}
	defer rows.Close()

	skills := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := scanSkill(rows, &s); err != nil {
			return nil, dberr.Wrap(err, "scan_skill")
		}
		skills = append(skills, s)
	}

	return skills, nil
}

func (repository *PostgresRepository) GetSkill(context context.Context, id string) (*Skill, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		skillColumns(), schema.RefSkill.Table, schema.RefSkill.ID)

	s := &Skill{}
	if err := scanSkill(repository.db.QueryRow(context, query, id), s); err != nil {
		return nil, dberr.Wrap(err, "get_skill")
	}
	return s, nil
}

func (repository *PostgresRepository) CreateSkill(context context.Context, s *Skill) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.RefSkill.Table,
		schema.RefSkill.ID, schema.RefSkill.Name, schema.RefSkill.Category,
		schema.RefSkill.Proficiency, schema.RefSkill.Icon, schema.RefSkill.Color,
		schema.RefSkill.YearsOfExperience, schema.RefSkill.Description, schema.RefSkill.IsActive,
		schema.RefSkill.SortOrder, schema.RefSkill.CreatedBy,
		schema.RefSkill.CreatedAt, schema.RefSkill.UpdatedAt,
		schema.RefSkill.CreatedAt, schema.RefSkill.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ID, s.Name, s.Category, s.Proficiency, s.Icon, s.Color,
		s.YearsOfExperience, s.Description, s.IsActive, s.SortOrder, s.CreatedBy,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_skill")
}

func (repository *PostgresRepository) UpdateSkill(context context.Context, s *Skill) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.RefSkill.Table,
		schema.RefSkill.Name, schema.RefSkill.Category, schema.RefSkill.Proficiency,
		schema.RefSkill.Icon, schema.RefSkill.Color, schema.RefSkill.YearsOfExperience,
		schema.RefSkill.Description, schema.RefSkill.IsActive, schema.RefSkill.SortOrder,
		schema.RefSkill.UpdatedAt, schema.RefSkill.ID, schema.RefSkill.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ID, s.Name, s.Category, s.Proficiency, s.Icon, s.Color,
		s.YearsOfExperience, s.Description, s.IsActive, s.SortOrder,
	).Scan(&s.UpdatedAt)
	return dberr.Wrap(err, "update_skill")
}

func (repository *PostgresRepository) DeleteSkill(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefSkill.Table, schema.RefSkill.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_skill")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListByCategory(context context.Context, category string) ([]Skill, error) {
	orderBy, err := listing.OrderSQL(listing.DisplayOrder(), listColumns)
	if err != nil {
		return nil, dberr.Wrap(err, "list_skills_by_category")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = TRUE`,
		skillColumns(), schema.RefSkill.Table,
		schema.RefSkill.Category, schema.RefSkill.IsActive,
	) + orderBy

	rows, err := repository.db.Query(context, query, category)
	if err != nil {
		return nil, dberr.Wrap(err, "list_skills_by_category")
	}
	defer rows.Close()

	skills := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := scanSkill(rows, &s); err != nil {
			return nil, dberr.Wrap(err, "scan_skill")
		}
		skills = append(skills, s)
	}

	return skills, nil
}

// UpdateSortOrders applies a bulk reorder inside one transaction so a partial
// failure never leaves the matrix half-shuffled.
func (repository *PostgresRepository) UpdateSortOrders(context context.Context, orders []OrderInput) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_reorder_skills")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.RefSkill.Table, schema.RefSkill.SortOrder, schema.RefSkill.UpdatedAt, schema.RefSkill.ID)

	batch := &pgx.Batch{}
	for _, order := range orders {
		batch.Queue(query, order.ID, order.SortOrder)
	}

	response := transaction.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return dberr.Wrap(err, "reorder_skills")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_reorder_skills")
	}
	return nil
}
