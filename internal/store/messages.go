package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Message is an archived contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"message"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveMessage archives a submission and returns its id.
func (d *DB) SaveMessage(ctx context.Context, name, email, message string) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, message, created_at)
		VALUES (?, ?, ?, ?)
	`, name, email, message, d.stamp(d.now()))
	if err != nil {
		return 0, errors.Wrap(err, "save message")
	}
	id, err := res.LastInsertId()
	return id, errors.Wrap(err, "message id")
}

// MarkDelivered flags a message as mailed.
func (d *DB) MarkDelivered(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `UPDATE messages SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "mark delivered")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("message %d not found", id)
	}
	return nil
}

// RecentMessages returns the newest messages first.
func (d *DB) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, email, message, delivered, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query messages")
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var created string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Delivered, &created); err != nil {
			return nil, errors.Wrap(err, "scan message")
		}
		m.CreatedAt = parseStamp(created)
		messages = append(messages, m)
	}
	return messages, errors.Wrap(rows.Err(), "iterate messages")
}

// DeleteMessage removes one archived message.
func (d *DB) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete message")
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
