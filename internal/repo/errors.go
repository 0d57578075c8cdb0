package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-gin-portfolio/internal/feature/contact"
	"go-gin-portfolio/internal/feature/portfolio"
	"go-gin-portfolio/internal/feature/user"
)

// isDupKey recognises unique violations from postgres, mysql and sqlite.
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "23505")
}

// AutoMigrate creates or updates the tables of every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.UserModel{}, &portfolio.PortfolioModel{}, &contact.ContactModel{})
}
