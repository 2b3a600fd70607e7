package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/integrations/firebaseauth"
	providerRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/provider"
	userRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/user"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/auth/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/jwt"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/ptr"
)

type fakeUsers struct {
	items []*domain.User
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range f.items {
		sameEmail := existing.Email != nil && u.Email != nil && *existing.Email == *u.Email
		sameUID := existing.ExternalUID != nil && u.ExternalUID != nil && *existing.ExternalUID == *u.ExternalUID
		if sameEmail || sameUID {
			return nil, userRepo.ErrUserAlreadyExists
		}
	}
	u.ID = int64(len(f.items) + 1)
	f.items = append(f.items, u)
	return u, nil
}

func (f *fakeUsers) find(match func(u *domain.User) bool) (*domain.User, error) {
	for _, u := range f.items {
		if match(u) {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Email != nil && *u.Email == email })
}

func (f *fakeUsers) GetByExternalUID(_ context.Context, uid string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.ExternalUID != nil && *u.ExternalUID == uid })
}

type fakeProviders struct {
	byUser map[int64]*domain.ServiceProvider
}

func (f *fakeProviders) Create(_ context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	p.ID = int64(100 + len(f.byUser))
	f.byUser[p.UserID] = p
	return p, nil
}

func (f *fakeProviders) GetByUserID(_ context.Context, userID int64) (*domain.ServiceProvider, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

type fakeVerifier struct {
	identities map[string]*firebaseauth.Identity
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, token string) (*firebaseauth.Identity, error) {
	if token == "expired" {
		return nil, firebaseauth.ErrTokenExpired
	}
	id, ok := f.identities[token]
	if !ok {
		return nil, firebaseauth.ErrInvalidToken
	}
	return id, nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newService(external ExternalVerifier) (*Service, *fakeUsers, *fakeProviders) {
	users := &fakeUsers{}
	providers := &fakeProviders{byUser: map[int64]*domain.ServiceProvider{}}
	tokens := jwt.NewService(jwt.Config{Secret: []byte("test-secret"), Expiration: time.Hour, Issuer: "servemee"})
	svc := NewService(users, providers, tokens, external, inlineTx{}, logger.NewNop())
	svc.bcryptCost = bcrypt.MinCost
	return svc, users, providers
}

func TestRegisterLoginAuthenticate(t *testing.T) {
	svc, users, _ := newService(nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &models.RegisterRequest{
		Email:    "asha@example.com",
		Password: "correct-horse",
		FullName: "Asha Rao",
	})
	require.NoError(t, err)
	assert.Equal(t, "consumer", registered.User.Role)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.NotEqual(t, "correct-horse", *users.items[0].PasswordHash)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "asha@example.com", Password: "wrong-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, err := svc.Login(ctx, &models.LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, logged.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.UserID)
	assert.Equal(t, domain.RoleConsumer, identity.Role)
	assert.Nil(t, identity.ProviderID)
}

func TestRegister_ProviderGetsProfile(t *testing.T) {
	svc, _, providers := newService(nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &models.RegisterRequest{
		Email:    "fixit@example.com",
		Password: "plumbing-pro",
		FullName: "Fix It",
		Role:     "service_provider",
	})
	require.NoError(t, err)
	require.Contains(t, providers.byUser, resp.User.ID)

	identity, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, identity.ProviderID)
	assert.Equal(t, providers.byUser[resp.User.ID].ID, *identity.ProviderID)

	profile, err := svc.Profile(ctx, identity)
	require.NoError(t, err)
	require.NotNil(t, profile.Provider)
	assert.Empty(t, profile.Provider.LocalityIDs)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{name: "bad email", req: models.RegisterRequest{Email: "not-an-email", Password: "long-enough", FullName: "A"}},
		{name: "short password", req: models.RegisterRequest{Email: "a@example.com", Password: "short", FullName: "A"}},
		{name: "missing name", req: models.RegisterRequest{Email: "a@example.com", Password: "long-enough", FullName: "  "}},
		{name: "admin role", req: models.RegisterRequest{Email: "a@example.com", Password: "long-enough", FullName: "A", Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(nil)
			_, err := svc.Register(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService(nil)
	req := &models.RegisterRequest{Email: "asha@example.com", Password: "correct-horse", FullName: "Asha"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	svc, users, _ := newService(nil)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	resp, err := svc.Register(ctx, &models.RegisterRequest{Email: "a@example.com", Password: "long-enough", FullName: "A"})
	require.NoError(t, err)
	users.items[0].IsActive = false

	_, err = svc.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthenticate_ExternalProvisionsConsumer(t *testing.T) {
	verifier := &fakeVerifier{identities: map[string]*firebaseauth.Identity{
		"firebase-token": {UID: "uid-1", Email: "ravi@example.com", Name: "Ravi", PhoneNumber: "+911234567890"},
	}}
	svc, users, _ := newService(verifier)
	ctx := context.Background()

	identity, err := svc.Authenticate(ctx, "firebase-token")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleConsumer, identity.Role)
	require.Len(t, users.items, 1)
	assert.Equal(t, "uid-1", *users.items[0].ExternalUID)
	assert.Nil(t, users.items[0].PasswordHash)

	again, err := svc.Authenticate(ctx, "firebase-token")
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, again.UserID)
	assert.Len(t, users.items, 1)

	users.items[0].Role = domain.RoleAdmin
	promoted, err := svc.Authenticate(ctx, "firebase-token")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)

	_, err = svc.Authenticate(ctx, "expired")
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = svc.Authenticate(ctx, "unknown")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticate_ExternalEmailTakenByLocalAccount(t *testing.T) {
	verifier := &fakeVerifier{identities: map[string]*firebaseauth.Identity{
		"firebase-token": {UID: "uid-2", Email: "asha@example.com"},
	}}
	svc, users, _ := newService(verifier)
	users.items = append(users.items, &domain.User{
		ID: 1, Email: ptr.Ptr("asha@example.com"), Role: domain.RoleConsumer, IsActive: true, PasswordHash: ptr.Ptr("x"),
	})

	_, err := svc.Authenticate(context.Background(), "firebase-token")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate_ExternalPhoneOnlyAccounts(t *testing.T) {
	verifier := &fakeVerifier{identities: map[string]*firebaseauth.Identity{
		"phone-a": {UID: "uid-a", PhoneNumber: "+911111111111"},
		"phone-b": {UID: "uid-b", PhoneNumber: "+922222222222"},
	}}
	svc, users, _ := newService(verifier)
	ctx := context.Background()

	first, err := svc.Authenticate(ctx, "phone-a")
	require.NoError(t, err)
	second, err := svc.Authenticate(ctx, "phone-b")
	require.NoError(t, err)

	assert.NotEqual(t, first.UserID, second.UserID)
	require.Len(t, users.items, 2)
	for _, u := range users.items {
		assert.Nil(t, u.Email)
		assert.Equal(t, *u.PhoneNumber, u.FullName)
	}

	again, err := svc.Authenticate(ctx, "phone-b")
	require.NoError(t, err)
	assert.Equal(t, second.UserID, again.UserID)
	assert.Len(t, users.items, 2)

	profile, err := svc.Profile(ctx, first)
	require.NoError(t, err)
	assert.Empty(t, profile.User.Email)
}
