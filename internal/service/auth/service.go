package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/integrations/firebaseauth"
	providerRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/provider"
	userRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/user"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/auth/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/jwt"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/ptr"
)

const tokenType = "Bearer"

// Service регистрация, вход и проверка bearer токенов
type Service struct {
	userRepo     UserRepository
	providerRepo ProviderRepository
	tokens       TokenService
	external     ExternalVerifier
	txManager    TransactionManager
	logger       Logger
	bcryptCost   int
}

// NewService создает сервис аутентификации
// external может быть nil: тогда принимаются только собственные JWT
func NewService(
	userRepo UserRepository,
	providerRepo ProviderRepository,
	tokens TokenService,
	external ExternalVerifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		tokens:       tokens,
		external:     external,
		txManager:    txManager,
		logger:       logger,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

// Register создает пользователя; для service_provider создается пустой профиль провайдера
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	role, err := validateRegister(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Register: email=%s, role=%s", req.Email, role)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}
	hashed := string(hash)

	var created *domain.User

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = s.userRepo.Create(txCtx, &domain.User{
			Email:        ptr.Ptr(req.Email),
			PasswordHash: &hashed,
			FullName:     strings.TrimSpace(req.FullName),
			PhoneNumber:  req.PhoneNumber,
			Role:         role,
			IsActive:     true,
		})
		if err != nil {
			if errors.Is(err, userRepo.ErrUserAlreadyExists) {
				return ErrEmailTaken
			}
			return fmt.Errorf("%w: Register - create user: %v", ErrInternal, err)
		}

		if role != domain.RoleServiceProvider {
			return nil
		}
		if _, err := s.providerRepo.Create(txCtx, &domain.ServiceProvider{UserID: created.ID}); err != nil {
			return fmt.Errorf("%w: Register - create provider profile: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			s.logger.Warn("Register: email %s already registered", req.Email)
			return nil, err
		}
		s.logger.Error("Register: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Register - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created user id=%d", created.ID)
	return s.issue(created)
}

func validateRegister(req *models.RegisterRequest) (domain.Role, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < domain.MinPasswordLength || len(req.Password) > domain.MaxPasswordLength {
		return "", fmt.Errorf("%w: password must be %d to %d characters", ErrInvalidInput, domain.MinPasswordLength, domain.MaxPasswordLength)
	}
	name := strings.TrimSpace(req.FullName)
	if name == "" || len(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	}

	role := domain.RoleConsumer
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	// администраторы не регистрируются через API
	if role != domain.RoleConsumer && role != domain.RoleServiceProvider {
		return "", fmt.Errorf("%w: role must be consumer or service_provider", ErrInvalidInput)
	}

	return role, nil
}

// Login проверяет пароль и выпускает access токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email %s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to get user: %v", err)
		return nil, fmt.Errorf("%w: Login - get user: %v", ErrInternal, err)
	}

	if user.PasswordHash == nil {
		s.logger.Warn("Login: user id=%d has no local password", user.ID)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return s.issue(user)
}

func (s *Service) issue(user *domain.User) (*models.TokenResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("issue: failed to generate token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
		User:        models.FromDomainUser(user),
	}, nil
}

// Profile возвращает текущего пользователя и профиль провайдера, если он есть
func (s *Service) Profile(ctx context.Context, identity *domain.Identity) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: Profile - get user: %v", ErrInternal, err)
	}

	resp := &models.ProfileResponse{User: models.FromDomainUser(user)}

	if user.Role == domain.RoleServiceProvider {
		provider, err := s.providerRepo.GetByUserID(ctx, user.ID)
		switch {
		case err == nil:
			resp.Provider = models.FromDomainProvider(provider)
		case errors.Is(err, providerRepo.ErrProviderNotFound):
		default:
			return nil, fmt.Errorf("%w: Profile - get provider: %v", ErrInternal, err)
		}
	}

	return resp, nil
}

// Authenticate проверяет bearer токен и возвращает личность вызывающего
// Роль всегда берется из локальной записи пользователя
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	var (
		user *domain.User
		err  error
	)
	if s.external != nil {
		user, err = s.authenticateExternal(ctx, token)
	} else {
		user, err = s.authenticateLocal(ctx, token)
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	identity := &domain.Identity{UserID: user.ID, Role: user.Role}
	if user.Role == domain.RoleServiceProvider {
		provider, err := s.providerRepo.GetByUserID(ctx, user.ID)
		switch {
		case err == nil:
			identity.ProviderID = &provider.ID
		case errors.Is(err, providerRepo.ErrProviderNotFound):
		default:
			s.logger.Error("Authenticate: failed to get provider for user id=%d: %v", user.ID, err)
			return nil, fmt.Errorf("%w: Authenticate - get provider: %v", ErrInternal, err)
		}
	}

	return identity, nil
}

func (s *Service) authenticateLocal(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrUnauthorized
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("authenticateLocal: user id=%d from token not found", userID)
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: authenticateLocal - get user: %v", ErrInternal, err)
	}
	return user, nil
}

func (s *Service) authenticateExternal(ctx context.Context, token string) (*domain.User, error) {
	ext, err := s.external.VerifyIDToken(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, firebaseauth.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, firebaseauth.ErrInvalidToken):
			return nil, ErrUnauthorized
		default:
			s.logger.Error("authenticateExternal: %v", err)
			return nil, fmt.Errorf("%w: verify token: %v", ErrInternal, err)
		}
	}

	user, err := s.userRepo.GetByExternalUID(ctx, ext.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: authenticateExternal - get user: %v", ErrInternal, err)
	}

	return s.provision(ctx, ext)
}

// provision создает локального пользователя (consumer) при первом входе через внешний провайдер
func (s *Service) provision(ctx context.Context, ext *firebaseauth.Identity) (*domain.User, error) {
	uid := ext.UID
	name := ext.Name
	if name == "" {
		name = ext.Email
	}
	if name == "" {
		name = ext.PhoneNumber
	}

	// вход по телефону приходит без email: храним NULL, а не пустую строку
	var email, phone *string
	if ext.Email != "" {
		email = &ext.Email
	}
	if ext.PhoneNumber != "" {
		phone = &ext.PhoneNumber
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		ExternalUID: &uid,
		Email:       email,
		FullName:    name,
		PhoneNumber: phone,
		Role:        domain.RoleConsumer,
		IsActive:    true,
	})
	if err == nil {
		s.logger.Info("provision: created user id=%d for external uid=%s", user.ID, uid)
		return user, nil
	}
	if !errors.Is(err, userRepo.ErrUserAlreadyExists) {
		s.logger.Error("provision: failed to create user for uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: provision: %v", ErrInternal, err)
	}

	// параллельный запрос уже создал пользователя, либо email занят локальным аккаунтом
	user, err = s.userRepo.GetByExternalUID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if email == nil {
		s.logger.Error("provision: unique violation for uid=%s without email: %v", uid, err)
		return nil, fmt.Errorf("%w: provision - lookup after conflict: %v", ErrInternal, err)
	}
	s.logger.Warn("provision: email %s is taken by another account", ext.Email)
	return nil, ErrEmailTaken
}
