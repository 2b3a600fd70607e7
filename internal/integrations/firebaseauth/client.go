package firebaseauth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Client проверяет Firebase ID tokens
type Client struct {
	auth *auth.Client
	log  Logger
}

// NewClient инициализирует Firebase App и Auth клиент
// credentialsFile может быть пустым: тогда используются Application Default Credentials
func NewClient(ctx context.Context, projectID, credentialsFile string, log Logger) (*Client, error) {
	opts := make([]option.ClientOption, 0, 1)
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize app: %v", ErrInternal, err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create auth client: %v", ErrInternal, err)
	}

	return &Client{auth: authClient, log: log}, nil
}

// VerifyIDToken проверяет подпись и срок действия токена
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := c.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return nil, ErrTokenExpired
		}
		c.log.Warn("VerifyIDToken: rejected token: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return identityFromClaims(token.UID, token.Claims), nil
}

func identityFromClaims(uid string, claims map[string]interface{}) *Identity {
	id := &Identity{UID: uid}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		id.Name = v
	}
	if v, ok := claims["phone_number"].(string); ok {
		id.PhoneNumber = v
	}
	return id
}
