package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var ticketCols = []string{"id", "title", "tickets_available", "created_at", "updated_at"}

func newMock(t *testing.T) (*TicketRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTicketRepo(db), mock
}

func ticketRow(id int64, title string, n int) *sqlmock.Rows {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(ticketCols).AddRow(id, title, n, now, now)
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO movie_tickets`).WithArgs("Epic Quest", 100).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(`FROM movie_tickets WHERE id = \?`).WithArgs(uint64(7)).
		WillReturnRows(ticketRow(7, "Epic Quest", 100))

	got, err := repo.Create(context.Background(), " Epic Quest ", 100)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != 7 || got.TicketsAvailable != 100 {
		t.Fatalf("ticket: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateDuplicateTitle(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO movie_tickets`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if _, err := repo.Create(context.Background(), "Epic Quest", 1); !errors.Is(err, ErrTicketExists) {
		t.Fatalf("want ErrTicketExists, got %v", err)
	}
}

func TestGetByTitleNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`FROM movie_tickets WHERE title = \?`).WithArgs("Nope").WillReturnError(sql.ErrNoRows)
	if _, err := repo.GetByTitle(context.Background(), "Nope"); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("want ErrTicketNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`ORDER BY title`).WillReturnRows(sqlmock.NewRows(ticketCols).
		AddRow(1, "A", 5, now, now).
		AddRow(2, "B", 0, now, now))
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 2 || got[1].Title != "B" {
		t.Fatalf("list: %v %+v", err, got)
	}
}

func TestAddTickets(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`UPDATE movie_tickets SET tickets_available = tickets_available \+ \?`).
		WithArgs(10, "Epic Quest").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE title = \?`).WithArgs("Epic Quest").WillReturnRows(ticketRow(1, "Epic Quest", 15))
	got, err := repo.AddTickets(context.Background(), "Epic Quest", 10)
	if err != nil || got.TicketsAvailable != 15 {
		t.Fatalf("add: %v %+v", err, got)
	}

	mock.ExpectExec(`UPDATE movie_tickets`).WillReturnResult(sqlmock.NewResult(0, 0))
	if _, err := repo.AddTickets(context.Background(), "Missing", 1); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("want ErrTicketNotFound, got %v", err)
	}
}

func TestBook(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs("Epic Quest").WillReturnRows(ticketRow(3, "Epic Quest", 10))
	mock.ExpectExec(`UPDATE movie_tickets SET tickets_available = tickets_available - \?`).
		WithArgs(4, uint64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.Book(context.Background(), "Epic Quest", 4)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if got.TicketsAvailable != 6 {
		t.Fatalf("remaining: %d", got.TicketsAvailable)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestBookRollsBack(t *testing.T) {
	cases := []struct {
		name string
		rows *sqlmock.Rows
		err  error
		want error
	}{
		{"not enough", ticketRow(3, "Epic Quest", 2), nil, ErrNotEnoughTickets},
		{"missing", nil, sql.ErrNoRows, ErrTicketNotFound},
	}
	for _, tc := range cases {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		q := mock.ExpectQuery(`FOR UPDATE`)
		if tc.rows != nil {
			q.WillReturnRows(tc.rows)
		} else {
			q.WillReturnError(tc.err)
		}
		mock.ExpectRollback()

		if _, err := repo.Book(context.Background(), "Epic Quest", 5); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("%s: expectations: %v", tc.name, err)
		}
	}
}
