package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/Sedmeq/WorkTrack/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == EmailConstraint {
				return employeeerrors.ErrEmailAlreadyExists
			}
		case "23503":
			return employeeerrors.ErrInvalidReference
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, EmailConstraint) {
		return employeeerrors.ErrEmailAlreadyExists
	}

	return err
}
