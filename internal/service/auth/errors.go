package auth

import "errors"

var (
	// ErrEmailTaken возвращается при регистрации с уже занятым email
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized токен отсутствует, невалиден или пользователь не найден
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired срок действия токена истек
	ErrTokenExpired = errors.New("token expired")

	// ErrAccountDisabled пользователь деактивирован
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
