package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalidTextRepresentation is raised when an id is not valid uuid text.
const invalidTextRepresentation = "22P02"

// isNoRow reports whether err means the addressed row cannot exist: nothing
// came back, or the id could not be cast to the column type.
func isNoRow(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
