package service

import (
	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/pkg/validation"
)

// check validates v and wraps failures as a domain validation error.
func check(v any, msg string) error {
	if details := validation.Struct(v); len(details) > 0 {
		return domain.Invalid(msg, details)
	}
	return nil
}
