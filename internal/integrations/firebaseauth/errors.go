package firebaseauth

import "errors"

var (
	// ErrInvalidToken токен не прошел проверку Firebase
	ErrInvalidToken = errors.New("firebaseauth client: invalid id token")

	// ErrTokenExpired срок действия токена истек
	ErrTokenExpired = errors.New("firebaseauth client: id token expired")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("firebaseauth client: internal error")
)
