package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/movie-analytics/internal/model"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// TicketRepo manages the movie_tickets inventory: one row per title with
// the number of tickets still on sale.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = `id, title, tickets_available, created_at, updated_at`

// Create adds a title with an initial ticket count.
func (r *TicketRepo) Create(ctx context.Context, title string, tickets int) (*model.Ticket, error) {
	title = strings.TrimSpace(title)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movie_tickets (title, tickets_available) VALUES (?, ?)`, title, tickets)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return nil, ErrTicketExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM movie_tickets WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &t.TicketsAvailable, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) GetByTitle(ctx context.Context, title string) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM movie_tickets WHERE title = ?`, strings.TrimSpace(title)).
		Scan(&t.ID, &t.Title, &t.TicketsAvailable, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns every title ordered by title.
func (r *TicketRepo) List(ctx context.Context) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ticketColumns+` FROM movie_tickets ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Ticket{}
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.Title, &t.TicketsAvailable, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AddTickets increases the stock of an existing title and returns the
// updated row.
func (r *TicketRepo) AddTickets(ctx context.Context, title string, n int) (*model.Ticket, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE movie_tickets SET tickets_available = tickets_available + ? WHERE title = ?`,
		n, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTicketNotFound
	}
	return r.GetByTitle(ctx, title)
}

// Book takes n tickets from a title.  The row is locked for the duration
// of the transaction so concurrent bookings cannot oversell.
func (r *TicketRepo) Book(ctx context.Context, title string, n int) (t *model.Ticket, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			t, err = nil, fmt.Errorf("commit booking: %w", cerr)
		}
	}()

	var cur model.Ticket
	err = tx.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM movie_tickets WHERE title = ? FOR UPDATE`, strings.TrimSpace(title)).
		Scan(&cur.ID, &cur.Title, &cur.TicketsAvailable, &cur.CreatedAt, &cur.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrTicketNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if cur.TicketsAvailable < n {
		err = ErrNotEnoughTickets
		return nil, err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE movie_tickets SET tickets_available = tickets_available - ? WHERE id = ?`, n, cur.ID); err != nil {
		return nil, err
	}
	cur.TicketsAvailable -= n
	return &cur, nil
}
