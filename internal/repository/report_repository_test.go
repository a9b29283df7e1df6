package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestReportRepository_FindByTaskID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"id", "task_id", "author_id", "comment"}).
		AddRow(7, 42, 3, "done")
	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE task_id = \$1`).
		WillReturnRows(rows)

	report, err := repo.FindByTaskID(42)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), report.ID)
	assert.Equal(t, uint64(42), report.TaskID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_FindByTaskID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE task_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id"}))

	_, err := repo.FindByTaskID(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CountByIDsInTeam(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" JOIN team_members ON users.id = team_members.user_id`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByIDsInTeam([]uint64{1, 2, 3}, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
