package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/feature/user"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDupKey(err) {
			if strings.Contains(strings.ToLower(err.Error()), "username") {
				return domain.ErrDuplicateUsername
			}
			return domain.ErrDuplicateEmail
		}
		return err
	}
	*u = *m.ToDomain()
	return nil
}

func (r *UserRepo) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(email))
}

// FindByLogin matches identifier against username or email.
func (r *UserRepo) FindByLogin(ctx context.Context, identifier string) (*domain.User, error) {
	return r.first(ctx, "username = ? OR email = ?", identifier, strings.ToLower(identifier))
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	res := r.db.WithContext(ctx).Model(&user.UserModel{}).Where("id = ?", u.ID).Updates(map[string]any{
		"username":      m.Username,
		"email":         m.Email,
		"password_hash": m.PasswordHash,
		"role":          m.Role,
		"is_active":     m.IsActive,
		"last_login":    m.LastLogin,
	})
	if res.Error != nil {
		if isDupKey(res.Error) {
			if strings.Contains(strings.ToLower(res.Error.Error()), "username") {
				return domain.ErrDuplicateUsername
			}
			return domain.ErrDuplicateEmail
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("User")
	}
	return nil
}

func (r *UserRepo) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&user.UserModel{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at).Error
}
