package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ParseDBError translates a storage error into a domain error with a
// user-facing message. Unique-constraint violations are matched per column so
// the caller gets the contract message for the field that collided; anything
// unrecognized is returned as-is and will surface as a 500.
func ParseDBError(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMessage)
	}

	errLower := strings.ToLower(err.Error())
	if strings.Contains(errLower, "duplicate key") ||
		strings.Contains(errLower, "unique constraint") ||
		strings.Contains(errLower, "unique failed") {
		return parseDuplicateKeyError(errLower)
	}

	return err
}

func parseDuplicateKeyError(errLower string) error {
	switch {
	case strings.Contains(errLower, "username"):
		return Conflict("Пользователь с таким логином уже существует")
	case strings.Contains(errLower, "license_plate"):
		return Conflict("Транспорт с таким номером уже существует")
	case strings.Contains(errLower, "declaration_number"):
		return Conflict("Декларация с таким номером уже существует")
	case strings.Contains(errLower, "payment_number"):
		return Conflict("Платеж с таким номером уже существует")
	case strings.Contains(errLower, "unp"):
		return Conflict("Пользователь с таким УНП уже существует")
	default:
		return Conflict("Запись с такими данными уже существует")
	}
}
