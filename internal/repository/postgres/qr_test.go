package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"chamber-connect-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestQRRepository_RollupDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewQRRepository(db)

	// Without a visitor key on scan rows, unique visitors must come from the
	// (location, device) tuple, never a single column.
	mock.ExpectExec("INSERT INTO qr_analytics_summary(.|\n)+" +
		regexp.QuoteMeta("COUNT(DISTINCT (country, region, city_name, device_type))")).
		WithArgs("2026-03-09").
		WillReturnResult(sqlmock.NewResult(0, 42))

	rows, err := repo.RollupDay(context.Background(), "2026-03-09")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), rows)
}
