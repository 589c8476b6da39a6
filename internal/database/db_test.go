package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestDSN(t *testing.T) {
	cfg, err := mysql.ParseDSN(DSN("movies", "pw", "db", "3306", "analytics"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.User != "movies" || cfg.Passwd != "pw" || cfg.Addr != "db:3306" || cfg.DBName != "analytics" {
		t.Fatalf("dsn fields: %+v", cfg)
	}
	if !cfg.ParseTime || cfg.Loc != time.UTC {
		t.Fatalf("parseTime=%v loc=%v", cfg.ParseTime, cfg.Loc)
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS movie_tickets").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
