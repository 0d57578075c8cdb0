package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-gin-portfolio/internal/core/auth"
	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/pkg/utils"
)

const minPasswordLen = 6

type AuthOptions struct {
	BcryptCost        int
	AllowRegistration bool
}

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
	opts  AuthOptions
	now   func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger, opts AuthOptions) *AuthService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = utils.DefaultPasswordCost
	}
	return &AuthService{users: users, jwt: jwter, log: log, opts: opts, now: time.Now}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if !s.opts.AllowRegistration {
		return nil, domain.ErrRegistrationClosed
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := check(in, "invalid registration"); err != nil {
		return nil, err
	}

	u, err := s.newUser(in.Username, in.Email, in.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("uid", u.ID), zap.String("username", u.Username))
	return s.session(u)
}

func (s *AuthService) newUser(username, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := utils.HashPassword(password, s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// Login authenticates and issues a token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*Session, error) {
	u, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

// Authenticate checks the password of the user whose username or email is identifier.
// Unknown and inactive users cost one bcrypt comparison like a wrong password does.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.Invalid("username and password are required", nil)
	}
	u, err := s.users.FindByLogin(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if u == nil {
		utils.CheckPassword(password, s.dummy())
		return nil, domain.ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) || !u.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	at := s.now().UTC()
	if err := s.users.TouchLogin(ctx, u.ID, at); err != nil {
		s.log.Warn("record last login failed", zap.String("uid", u.ID), zap.Error(err))
	} else {
		u.LastLogin = &at
	}
	return u, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword("not-a-real-password", s.opts.BcryptCost)
	})
	return s.dummyHash
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	tok, err := s.jwt.Issue(auth.Principal{UserID: u.ID, Role: string(u.Role)})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: tok, User: u}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User")
	}
	return u, nil
}

// LoadPrincipal resolves a verified token to the stored account; the stored role wins
// over the role claimed by the token.
func (s *AuthService) LoadPrincipal(ctx context.Context, p auth.Principal) (auth.Principal, error) {
	u, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return auth.Principal{}, err
	}
	if u == nil || !u.IsActive {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return auth.Principal{UserID: u.ID, Role: string(u.Role)}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil || !utils.CheckPassword(current, u.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if err := validateNewPassword(next); err != nil {
		return err
	}
	if current == next {
		return fmt.Errorf("%w: new password must be different from the current one", domain.ErrWeakPassword)
	}
	return s.setPassword(ctx, u, next)
}

// ResetPassword sets a new password without knowing the old one. Operator use only.
func (s *AuthService) ResetPassword(ctx context.Context, identifier, next string) (*domain.User, error) {
	u, err := s.users.FindByLogin(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User")
	}
	if err := validateNewPassword(next); err != nil {
		return nil, err
	}
	return u, s.setPassword(ctx, u, next)
}

// EnsureAdmin creates an admin account or promotes and reactivates an existing one.
// The password is only set when the account is created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (*domain.User, bool, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if u == nil {
		if u, err = s.users.FindByEmail(ctx, email); err != nil {
			return nil, false, err
		}
	}
	if u != nil {
		if u.Role == domain.RoleAdmin && u.IsActive {
			return u, false, nil
		}
		u.Role, u.IsActive = domain.RoleAdmin, true
		if err := s.users.Update(ctx, u); err != nil {
			return nil, false, err
		}
		s.log.Info("user promoted to admin", zap.String("uid", u.ID))
		return u, false, nil
	}

	if err := check(RegisterInput{Username: username, Email: email, Password: password}, "invalid admin account"); err != nil {
		return nil, false, err
	}
	u, err = s.newUser(username, email, password, domain.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	s.log.Info("admin created", zap.String("uid", u.ID), zap.String("username", u.Username))
	return u, true, nil
}

func (s *AuthService) setPassword(ctx context.Context, u *domain.User, next string) error {
	hash, err := utils.HashPassword(next, s.opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	s.log.Info("password changed", zap.String("uid", u.ID))
	return nil
}

func validateNewPassword(pw string) error {
	if len(pw) < minPasswordLen {
		return fmt.Errorf("%w: must be at least %d characters", domain.ErrWeakPassword, minPasswordLen)
	}
	if len(pw) > 72 {
		return fmt.Errorf("%w: must be at most 72 bytes", domain.ErrWeakPassword)
	}
	return nil
}

