package db

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func TestMigrateAppliesPendingVersions(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	fsys := fstest.MapFS{
		"m/0002_second.sql": {Data: []byte("CREATE TABLE second (id INT)")},
		"m/0001_first.sql":  {Data: []byte("CREATE TABLE first (id INT)")},
		"m/README.md":       {Data: []byte("ignored")},
	}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM schema_migrations")).
		WithArgs("0001_first").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM schema_migrations")).
		WithArgs("0002_second").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE second")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
		WithArgs("0002_second").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	if err := migrateFS(context.Background(), mock, fsys, "m"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMigrateRollsBackFailedVersion(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	fsys := fstest.MapFS{"m/0001_bad.sql": {Data: []byte("CREATE TABLE broken (")}}
	syntaxErr := errors.New("syntax error")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM schema_migrations")).
		WithArgs("0001_bad").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE broken")).WillReturnError(syntaxErr)
	mock.ExpectRollback()

	err = migrateFS(context.Background(), mock, fsys, "m")
	if !errors.Is(err, syntaxErr) {
		t.Fatalf("expected %v, got %v", syntaxErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	data, err := migrationFiles.ReadFile("migrations/0001_payroll_records.sql")
	if err != nil {
		t.Fatalf("read embedded migration: %v", err)
	}
	if !regexp.MustCompile(`payroll_records`).Match(data) {
		t.Fatal("expected payroll_records table in the first migration")
	}
}
