package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL (SQLSTATE)
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
)

// IsUniqueViolation нарушение уникального ограничения
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsForeignKeyViolation ссылка на несуществующую запись
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// IsCheckViolation нарушение CHECK ограничения
func IsCheckViolation(err error) bool {
	return hasCode(err, codeCheckViolation)
}

// IsSerializationFailure конфликт сериализуемой транзакции
func IsSerializationFailure(err error) bool {
	return hasCode(err, codeSerializationFailure)
}

// Constraint имя нарушенного ограничения (пустая строка, если это не ошибка PostgreSQL)
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
