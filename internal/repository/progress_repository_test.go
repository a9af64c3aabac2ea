package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gorm.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock, gdb
}

func TestProgressNextNo_IncrementsHighest(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewProgressRepository(gdb)

	mock.ExpectQuery(`ORDER BY LENGTH\(progress_no\) DESC, progress_no DESC`).
		WithArgs("prg-2026-%").
		WillReturnRows(sqlmock.NewRows([]string{"progress_no"}).AddRow("prg-2026-007"))

	no, err := repo.NextNo(context.Background(), 2026)

	require.NoError(t, err)
	assert.Equal(t, "prg-2026-008", no)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressNextNo_EmptyTableStartsAtOne(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewProgressRepository(gdb)

	mock.ExpectQuery(`ORDER BY LENGTH\(progress_no\) DESC, progress_no DESC`).
		WithArgs("prg-2026-%").
		WillReturnRows(sqlmock.NewRows([]string{"progress_no"}))

	no, err := repo.NextNo(context.Background(), 2026)

	require.NoError(t, err)
	assert.Equal(t, "prg-2026-001", no)
}

func TestProgressFindByID_NotFound(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewProgressRepository(gdb)

	mock.ExpectQuery(`FROM progress p`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), 42)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProgressListByContractAsc_Order(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewProgressRepository(gdb)

	rows := sqlmock.NewRows([]string{"id", "progress_no", "contract_id", "progress_month", "progress_amount"}).
		AddRow(int64(2), "prg-2026-002", int64(7), "2026-01", int64(100)).
		AddRow(int64(1), "prg-2026-001", int64(7), "2026-02", int64(200))

	mock.ExpectQuery(`ORDER BY progress_month ASC, id ASC`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	records, err := repo.ListByContractAsc(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-01", records[0].ProgressMonth)
	assert.Equal(t, "2026-02", records[1].ProgressMonth)
}

func TestProgressExistsByContractMonth(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewProgressRepository(gdb)

	mock.ExpectQuery(`WHERE contract_id = \$1 AND progress_month = \$2 AND id != \$3`).
		WithArgs(int64(7), "2026-03", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	exists, err := repo.ExistsByContractMonth(context.Background(), 7, "2026-03", 5)

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProgressCreate_GeneratesNumberInTransaction(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewProgressRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`ORDER BY LENGTH\(progress_no\) DESC, progress_no DESC`).
		WithArgs("prg-2026-%").
		WillReturnRows(sqlmock.NewRows([]string{"progress_no"}).AddRow("prg-2026-003"))
	mock.ExpectQuery(`INSERT INTO progress`).
		WithArgs("prg-2026-004", int64(7), "2026-04", nil, int64(5_000_000), "4월분").
		WillReturnRows(sqlmock.NewRows([]string{"id", "progress_no", "contract_id", "progress_month", "progress_amount"}).
			AddRow(int64(12), "prg-2026-004", int64(7), "2026-04", int64(5_000_000)))
	mock.ExpectCommit()

	saved, err := repo.Create(context.Background(), 2026, model.Progress{
		ContractID:     7,
		ProgressMonth:  "2026-04",
		ProgressAmount: 5_000_000,
		Note:           "4월분",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), saved.ID)
	assert.Equal(t, "prg-2026-004", saved.ProgressNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressUpdateRates_AllInOneTransaction(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewProgressRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE progress SET progress_rate`).
		WithArgs(25.0, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE progress SET progress_rate`).
		WithArgs(50.0, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateRates(context.Background(), []RateUpdate{
		{ID: 1, Rate: 25},
		{ID: 2, Rate: 50},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressUpdateRates_EmptyIsNoop(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewProgressRepository(gdb)

	require.NoError(t, repo.UpdateRates(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
