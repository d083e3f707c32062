package postgresql

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invalidUUIDError() error {
	return &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
}

func TestIsNoRow(t *testing.T) {
	assert.True(t, isNoRow(pgx.ErrNoRows))
	assert.True(t, isNoRow(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)))
	assert.True(t, isNoRow(invalidUUIDError()))
	assert.False(t, isNoRow(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isNoRow(errors.New("connection reset")))
	assert.False(t, isNoRow(nil))
}

func TestEmployeeRepository_GetByIDForUpdate_MalformedID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE e.id = $1 FOR UPDATE OF e`)).
		WithArgs("abc").
		WillReturnError(invalidUUIDError())

	_, err = repo.GetByIDForUpdate(context.Background(), "abc")

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Delete_MalformedID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM employees WHERE id = $1`)).
		WithArgs("abc").
		WillReturnError(invalidUUIDError())

	err = repo.Delete(context.Background(), "abc")

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_GetByID_MalformedID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDepartmentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM departments WHERE id = $1`)).
		WithArgs("garbage").
		WillReturnError(invalidUUIDError())

	_, err = repo.GetByID(context.Background(), "garbage")

	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_GetByID_MalformedID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttendanceRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM attendances a WHERE a.id = $1`)).
		WithArgs("abc").
		WillReturnError(invalidUUIDError())

	_, err = repo.GetByID(context.Background(), "abc")

	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
