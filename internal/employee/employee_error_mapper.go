package employee

import (
	"errors"

	employeeerrors "inthehaus-hr/internal/employee/errors"
	"inthehaus-hr/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if apperror.IsUniqueViolation(err, "uq_employee_code") {
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	}
	if apperror.IsUniqueViolation(err, "uq_employee_email") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
