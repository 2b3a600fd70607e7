package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid токен не прошел проверку подписи или формата
	ErrTokenInvalid = errors.New("jwt: invalid token")

	// ErrTokenExpired срок действия токена истёк
	ErrTokenExpired = errors.New("jwt: token expired")
)

// Config настройки выпуска токенов
type Config struct {
	Secret     []byte
	Expiration time.Duration
	Issuer     string
}

// Claims содержимое access токена
type Claims struct {
	Role string `json:"role"`
	gojwt.RegisteredClaims
}

// UserID возвращает ID пользователя из subject
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrTokenInvalid, c.Subject)
	}
	return id, nil
}

// Service выпуск и проверка HS256 токенов
type Service struct {
	cfg Config
	now func() time.Time
}

// NewService создает сервис токенов
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// GenerateToken выпускает access токен для пользователя
func (s *Service) GenerateToken(userID int64, role string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.Expiration)

	claims := &Claims{
		Role: role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken проверяет подпись, срок действия и issuer токена
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := gojwt.ParseWithClaims(tokenString, &Claims{}, func(token *gojwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
