package project

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/database/schema"
	"github.com/mquinde/devfolio/internal/platform/dberr"
)

// listColumns maps listing field names onto core.project columns.
var listColumns = map[string]string{
	"id":          schema.RefProject.ID,
	"title":       schema.RefProject.Title,
	"status":      schema.RefProject.Status,
	"category":    schema.RefProject.Category,
	"priority":    schema.RefProject.Priority,
	"featured":    schema.RefProject.Featured,
	"isPublished": schema.RefProject.IsPublished,
	"views":       schema.RefProject.Views,
	"likes":       schema.RefProject.Likes,
	"createdAt":   schema.RefProject.CreatedAt,
	"updatedAt":   schema.RefProject.UpdatedAt,
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func projectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.RefProject.ID, schema.RefProject.Title, schema.RefProject.Slug,
		schema.RefProject.Description, schema.RefProject.ShortDescription, schema.RefProject.Thumbnail,
		schema.RefProject.Technologies, schema.RefProject.Tags, schema.RefProject.Category,
		schema.RefProject.Status, schema.RefProject.LiveURL, schema.RefProject.GithubURL,
		schema.RefProject.Featured, schema.RefProject.Priority, schema.RefProject.Views,
		schema.RefProject.Likes, schema.RefProject.IsPublished, schema.RefProject.CreatedBy,
		schema.RefProject.CreatedAt, schema.RefProject.UpdatedAt,
	)
}

func scanProject(row interface{ Scan(...any) error }, p *Project) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.ShortDescription, &p.Thumbnail,
		&p.Technologies, &p.Tags, &p.Category, &p.Status, &p.LiveURL, &p.GithubURL,
		&p.Featured, &p.Priority, &p.Views, &p.Likes, &p.IsPublished, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func (repository *PostgresRepository) Count(context context.Context, predicate listing.Predicate) (int, error) {
	where, args, _, err := listing.WhereSQL(predicate, listColumns, 1)
	if err != nil {
		return 0, dberr.Wrap(err, "count_projects")
	}

	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.RefProject.Table) + where

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_projects")
	}
	return total, nil
}

func (repository *PostgresRepository) Find(context context.Context, predicate listing.Predicate, order listing.OrderSpec, limit, offset int) ([]Project, error) {
	where, args, nextArg, err := listing.WhereSQL(predicate, listColumns, 1)
	if err != nil {
		return nil, dberr.Wrap(err, "find_projects")
	}
	orderBy, err := listing.OrderSQL(order, listColumns)
	if err != nil {
		return nil, dberr.Wrap(err, "find_projects")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, projectColumns(), schema.RefProject.Table) +
		where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", nextArg, nextArg+1)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find_projects")
	}
	defer rows.Close()

	projects := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := scanProject(rows, &p); err != nil {
			return nil, dberr.Wrap(err, "scan_project")
		}
		projects = append(projects, p)
	}

	return projects, nil
}

func (repository *PostgresRepository) GetProject(context context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		projectColumns(), schema.RefProject.Table, schema.RefProject.ID)

	p := &Project{}
	if err := scanProject(repository.db.QueryRow(context, query, id), p); err != nil {
		return nil, dberr.Wrap(err, "get_project")
	}
	return p, nil
}

func (repository *PostgresRepository) GetProjectBySlug(context context.Context, slug string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		projectColumns(), schema.RefProject.Table, schema.RefProject.Slug)

	p := &Project{}
	if err := scanProject(repository.db.QueryRow(context, query, slug), p); err != nil {
		return nil, dberr.Wrap(err, "get_project_by_slug")
	}
	return p, nil
}

func (repository *PostgresRepository) CreateProject(context context.Context, p *Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.RefProject.Table,
		schema.RefProject.ID, schema.RefProject.Title, schema.RefProject.Slug,
		schema.RefProject.Description, schema.RefProject.ShortDescription, schema.RefProject.Thumbnail,
		schema.RefProject.Technologies, schema.RefProject.Tags, schema.RefProject.Category,
		schema.RefProject.Status, schema.RefProject.LiveURL, schema.RefProject.GithubURL,
		schema.RefProject.Featured, schema.RefProject.Priority, schema.RefProject.IsPublished,
		schema.RefProject.CreatedBy, schema.RefProject.CreatedAt, schema.RefProject.UpdatedAt,
		schema.RefProject.CreatedAt, schema.RefProject.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		p.ID, p.Title, p.Slug, p.Description, p.ShortDescription, p.Thumbnail,
		p.Technologies, p.Tags, p.Category, p.Status, p.LiveURL, p.GithubURL,
		p.Featured, p.Priority, p.IsPublished, p.CreatedBy,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return dberr.Wrap(err, "create_project")
}

func (repository *PostgresRepository) UpdateProject(context context.Context, p *Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = $15,
		    %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.RefProject.Table,
		schema.RefProject.Title, schema.RefProject.Slug, schema.RefProject.Description,
		schema.RefProject.ShortDescription, schema.RefProject.Thumbnail, schema.RefProject.Technologies,
		schema.RefProject.Tags, schema.RefProject.Category, schema.RefProject.Status,
		schema.RefProject.LiveURL, schema.RefProject.GithubURL, schema.RefProject.Featured,
		schema.RefProject.Priority, schema.RefProject.IsPublished,
		schema.RefProject.UpdatedAt, schema.RefProject.ID, schema.RefProject.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		p.ID, p.Title, p.Slug, p.Description, p.ShortDescription, p.Thumbnail,
		p.Technologies, p.Tags, p.Category, p.Status, p.LiveURL, p.GithubURL,
		p.Featured, p.Priority, p.IsPublished,
	).Scan(&p.UpdatedAt)
	return dberr.Wrap(err, "update_project")
}

func (repository *PostgresRepository) DeleteProject(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefProject.Table, schema.RefProject.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_project")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id string) (int, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 RETURNING %s`,
		schema.RefProject.Table, schema.RefProject.Views, schema.RefProject.Views,
		schema.RefProject.ID, schema.RefProject.Views)

	var views int
	if err := repository.db.QueryRow(context, query, id).Scan(&views); err != nil {
		return 0, dberr.Wrap(err, "increment_views")
	}
	return views, nil
}

func (repository *PostgresRepository) IncrementLikes(context context.Context, id string) (int, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 RETURNING %s`,
		schema.RefProject.Table, schema.RefProject.Likes, schema.RefProject.Likes,
		schema.RefProject.ID, schema.RefProject.Likes)

	var likes int
	if err := repository.db.QueryRow(context, query, id).Scan(&likes); err != nil {
		return 0, dberr.Wrap(err, "increment_likes")
	}
	return likes, nil
}

func (repository *PostgresRepository) SearchProjects(context context.Context, publishedOnly bool, term string, limit, offset int) ([]Project, int, error) {
	base := fmt.Sprintf(`FROM %s WHERE (%s ILIKE $1 OR %s ILIKE $1 OR array_to_string(%s, ' ') ILIKE $1)`,
		schema.RefProject.Table, schema.RefProject.Title, schema.RefProject.Description, schema.RefProject.Tags)

	args := []any{"%" + term + "%"}
	if publishedOnly {
		base += fmt.Sprintf(` AND %s = $2`, schema.RefProject.IsPublished)
		args = append(args, true)
	}

	var total int
	if err := repository.db.QueryRow(context, "SELECT count(*) "+base, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_search_projects")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		projectColumns(), base, schema.RefProject.CreatedAt, schema.RefProject.ID,
		len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_projects")
	}
	defer rows.Close()

	projects := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := scanProject(rows, &p); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_project")
		}
		projects = append(projects, p)
	}

	return projects, total, nil
}
