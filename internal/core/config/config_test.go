package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.yaml")
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	c, err := Load(missingPath(t))
	require.NoError(t, err)

	assert.Equal(t, 5000, c.App.HTTP.Port)
	assert.Equal(t, DevJWTSecret, c.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, c.JWT.TTL)
	assert.Equal(t, 12, c.Auth.BcryptCost)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, int64(5), c.Upload.MaxFileMB)
	assert.Equal(t, []string{"*"}, c.CORS.Origins)
	assert.Contains(t, c.Warnings(), "jwt.secret is using the development default; set JWT_SECRET")
}

func TestLoadLegacyEnvNames(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-very-long-secret-value-for-tests-0123456789")
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGIN", "https://a.example, https://b.example")
	t.Setenv("EMAIL_USER", "me@example.com")
	t.Setenv("EMAIL_PASS", "app-password")

	c, err := Load(missingPath(t))
	require.NoError(t, err)

	assert.Equal(t, 8081, c.App.HTTP.Port)
	assert.Equal(t, "a-very-long-secret-value-for-tests-0123456789", c.JWT.Secret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORS.Origins)
	assert.True(t, c.MailConfigured())
	assert.NotContains(t, c.Warnings(), "jwt.secret is using the development default; set JWT_SECRET")
}

func TestPrefixedEnvWinsOverLegacy(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "prefixed")
	t.Setenv("JWT_SECRET", "legacy")

	c, err := Load(missingPath(t))
	require.NoError(t, err)
	assert.Equal(t, "prefixed", c.JWT.Secret)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  env: production
  http:
    port: 9000
db:
  driver: postgres
  dsn: postgres://u:p@localhost/portfolio
jwt:
  ttl: 2h
upload:
  max_file_mb: 8
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.App.IsProduction())
	assert.Equal(t, 9000, c.App.HTTP.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, 2*time.Hour, c.JWT.TTL)
	assert.Equal(t, int64(8), c.Upload.MaxFileMB)
	assert.Contains(t, c.Warnings(), "cors.origins allows any origin in production")
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWarnings(t *testing.T) {
	c := &Config{
		App:  App{Env: "production"},
		JWT:  JWT{Secret: "short"},
		Auth: Auth{BcryptCost: 8},
		DB:   DB{Driver: "sqlite"},
		CORS: CORS{Origins: []string{"*"}},
		Mail: Mail{Provider: "smtp", Host: "smtp.example.com", Username: "u", Password: "p"},
	}
	w := c.Warnings()
	assert.Contains(t, w, "jwt.secret is shorter than 32 characters")
	assert.Contains(t, w, "db.driver is sqlite in production")
	assert.Contains(t, w, "cors.origins allows any origin in production")
	assert.Contains(t, w, "mail.to is empty; notifications go to mail.from")
	assert.Contains(t, w, "auth.bcrypt_cost is below 10")
	assert.NotContains(t, w, "mail transport is not configured; contact notifications are disabled")

	c = &Config{
		JWT:  JWT{Secret: "0123456789abcdef0123456789abcdef"},
		Auth: Auth{BcryptCost: 12},
		DB:   DB{Driver: "postgres"},
		Mail: Mail{Provider: "mailgun", MailgunDomain: "mg.example.com", MailgunAPIKey: "key", To: "me@example.com"},
	}
	assert.Empty(t, c.Warnings())
}
