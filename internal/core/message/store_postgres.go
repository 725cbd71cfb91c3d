package message

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/database/schema"
	"github.com/mquinde/devfolio/internal/platform/dberr"
)

// listColumns maps listing field names onto core.message columns.
var listColumns = map[string]string{
	"id":        schema.RefMessage.ID,
	"status":    schema.RefMessage.Status,
	"category":  schema.RefMessage.Category,
	"priority":  schema.RefMessage.Priority,
	"isSpam":    schema.RefMessage.IsSpam,
	"createdAt": schema.RefMessage.CreatedAt,
	"updatedAt": schema.RefMessage.UpdatedAt,
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func messageColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.RefMessage.ID, schema.RefMessage.Name, schema.RefMessage.Email,
		schema.RefMessage.Phone, schema.RefMessage.Subject, schema.RefMessage.Body,
		schema.RefMessage.Category, schema.RefMessage.Status, schema.RefMessage.Priority,
		schema.RefMessage.IPAddress, schema.RefMessage.UserAgent, schema.RefMessage.IsSpam,
		schema.RefMessage.RepliedAt, schema.RefMessage.ReplyMessage, schema.RefMessage.Notes,
		schema.RefMessage.CreatedAt, schema.RefMessage.UpdatedAt,
	)
}

func scanMessage(row interface{ Scan(...any) error }, m *Message) error {
	return row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body,
		&m.Category, &m.Status, &m.Priority, &m.IPAddress, &m.UserAgent, &m.IsSpam,
		&m.RepliedAt, &m.ReplyMessage, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
}

func (repository *PostgresRepository) Count(context context.Context, predicate listing.Predicate) (int, error) {
	where, args, _, err := listing.WhereSQL(predicate, listColumns, 1)
	if err != nil {
		return 0, dberr.Wrap(err, "count_messages")
	}

	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.RefMessage.Table) + where

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_messages")
	}
	return total, nil
}

func (repository *PostgresRepository) Find(context context.Context, predicate listing.Predicate, order listing.OrderSpec, limit, offset int) ([]Message, error) {
	where, args, nextArg, err := listing.WhereSQL(predicate, listColumns, 1)
	if err != nil {
		return nil, dberr.Wrap(err, "find_messages")
	}
	orderBy, err := listing.OrderSQL(order, listColumns)
	if err != nil {
		return nil, dberr.Wrap(err, "find_messages")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, messageColumns(), schema.RefMessage.Table) +
		where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", nextArg, nextArg+1)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find_messages")
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, dberr.Wrap(err, "scan_message")
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (repository *PostgresRepository) GetMessage(context context.Context, id string) (*Message, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		messageColumns(), schema.RefMessage.Table, schema.RefMessage.ID)

	m := &Message{}
	if err := scanMessage(repository.db.QueryRow(context, query, id), m); err != nil {
		return nil, dberr.Wrap(err, "get_message")
	}
	return m, nil
}

func (repository *PostgresRepository) CreateMessage(context context.Context, m *Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.RefMessage.Table,
		schema.RefMessage.ID, schema.RefMessage.Name, schema.RefMessage.Email,
		schema.RefMessage.Phone, schema.RefMessage.Subject, schema.RefMessage.Body,
		schema.RefMessage.Category, schema.RefMessage.Status, schema.RefMessage.Priority,
		schema.RefMessage.IPAddress, schema.RefMessage.UserAgent,
		schema.RefMessage.CreatedAt, schema.RefMessage.UpdatedAt,
		schema.RefMessage.CreatedAt, schema.RefMessage.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Body,
		m.Category, m.Status, m.Priority, m.IPAddress, m.UserAgent,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return dberr.Wrap(err, "create_message")
}

func (repository *PostgresRepository) UpdateStatus(context context.Context, id, status string) (*Message, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.RefMessage.Table, schema.RefMessage.Status, schema.RefMessage.UpdatedAt,
		schema.RefMessage.ID, messageColumns(),
	)

	m := &Message{}
	if err := scanMessage(repository.db.QueryRow(context, query, id, status), m); err != nil {
		return nil, dberr.Wrap(err, "update_message_status")
	}
	return m, nil
}

func (repository *PostgresRepository) MarkReplied(context context.Context, id, replyMessage string) (*Message, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = '%s', %s = NOW(), %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.RefMessage.Table, schema.RefMessage.ReplyMessage, schema.RefMessage.Status, StatusReplied,
		schema.RefMessage.RepliedAt, schema.RefMessage.UpdatedAt,
		schema.RefMessage.ID, messageColumns(),
	)

	m := &Message{}
	if err := scanMessage(repository.db.QueryRow(context, query, id, replyMessage), m); err != nil {
		return nil, dberr.Wrap(err, "mark_message_replied")
	}
	return m, nil
}

func (repository *PostgresRepository) MarkSpam(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = '%s', %s = NOW() WHERE %s = $1`,
		schema.RefMessage.Table, schema.RefMessage.IsSpam, schema.RefMessage.Status, StatusArchived,
		schema.RefMessage.UpdatedAt, schema.RefMessage.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "mark_message_spam")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteMessage(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefMessage.Table, schema.RefMessage.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_message")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountUnread(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = '%s' AND %s = FALSE`,
		schema.RefMessage.Table, schema.RefMessage.Status, StatusNew, schema.RefMessage.IsSpam)

	var count int
	if err := repository.db.QueryRow(context, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_unread_messages")
	}
	return count, nil
}

func (repository *PostgresRepository) ListSpam(context context.Context, limit, offset int) ([]Message, int, error) {
	base := fmt.Sprintf(`FROM %s WHERE %s = TRUE`, schema.RefMessage.Table, schema.RefMessage.IsSpam)

	var total int
	if err := repository.db.QueryRow(context, "SELECT count(*) "+base).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_spam_messages")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s DESC, %s DESC LIMIT $1 OFFSET $2",
		messageColumns(), base, schema.RefMessage.CreatedAt, schema.RefMessage.ID)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_spam_messages")
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_message")
		}
		messages = append(messages, m)
	}

	return messages, total, nil
}
