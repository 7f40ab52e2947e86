package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE, которые обрабатываются репозиториями
const (
	CodeUniqueViolation    = "23505"
	CodeExclusionViolation = "23P01"
	CodeForeignKey         = "23503"
)

// IsUniqueViolation сообщает, нарушен ли уникальный индекс
func IsUniqueViolation(err error) bool {
	return hasCode(err, CodeUniqueViolation)
}

// IsExclusionViolation сообщает, нарушено ли exclusion ограничение
func IsExclusionViolation(err error) bool {
	return hasCode(err, CodeExclusionViolation)
}

// IsForeignKeyViolation сообщает, ссылается ли запись на несуществующую строку
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, CodeForeignKey)
}

// Constraint возвращает имя нарушенного ограничения или пустую строку
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
