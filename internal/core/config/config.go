package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultPath      = "./configs/config.local.yaml"
	DevJWTSecret     = "dev-only-change-me"
	defaultSQLiteDSN = "portfolio.db"
)

type HTTP struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	ReadTimeoutSec    int    `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec   int    `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec    int    `mapstructure:"idle_timeout_sec"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
	MaxBodyMB         int64  `mapstructure:"max_body_mb"`
	MaxInFlight       int64  `mapstructure:"max_in_flight"`
}

type App struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	HTTP HTTP   `mapstructure:"http"`
}

func (a App) IsProduction() bool { return strings.EqualFold(a.Env, "production") }

type Log struct {
	Level string  `mapstructure:"level"`
	JSON  bool    `mapstructure:"json"`
	File  LogFile `mapstructure:"file"`
}

type LogFile struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type JWT struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type Auth struct {
	BcryptCost        int  `mapstructure:"bcrypt_cost"`
	AllowRegistration bool `mapstructure:"allow_registration"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string `mapstructure:"driver"`
	DSN                string `mapstructure:"dsn"`
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	AutoMigrate        bool   `mapstructure:"auto_migrate"`
	LogLevel           string `mapstructure:"log_level"`
}

type RateLimit struct {
	RPS          float64       `mapstructure:"rps"`
	Burst        int           `mapstructure:"burst"`
	PublicMax    int           `mapstructure:"public_max"`
	PublicWindow time.Duration `mapstructure:"public_window"`
}

type CORS struct {
	Origins []string `mapstructure:"origins"`
}

type Mail struct {
	Provider       string        `mapstructure:"provider"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	From           string        `mapstructure:"from"`
	To             string        `mapstructure:"to"`
	MailgunDomain  string        `mapstructure:"mailgun_domain"`
	MailgunAPIKey  string        `mapstructure:"mailgun_api_key"`
	MailgunBaseURL string        `mapstructure:"mailgun_base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type Cloudinary struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
}

type Upload struct {
	Driver     string     `mapstructure:"driver"`
	Dir        string     `mapstructure:"dir"`
	URLPrefix  string     `mapstructure:"url_prefix"`
	MaxFileMB  int64      `mapstructure:"max_file_mb"`
	Cloudinary Cloudinary `mapstructure:"cloudinary"`
}

type Config struct {
	App       App       `mapstructure:"app"`
	Log       Log       `mapstructure:"log"`
	JWT       JWT       `mapstructure:"jwt"`
	Auth      Auth      `mapstructure:"auth"`
	DB        DB        `mapstructure:"db"`
	Redis     Redis     `mapstructure:"redis"`
	RateLimit RateLimit `mapstructure:"ratelimit"`
	CORS      CORS      `mapstructure:"cors"`
	Mail      Mail      `mapstructure:"mail"`
	Upload    Upload    `mapstructure:"upload"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "portfolio-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5000)
	v.SetDefault("app.http.read_timeout_sec", 10)
	v.SetDefault("app.http.write_timeout_sec", 30)
	v.SetDefault("app.http.idle_timeout_sec", 60)
	v.SetDefault("app.http.request_timeout_sec", 15)
	v.SetDefault("app.http.max_body_mb", 16)
	v.SetDefault("app.http.max_in_flight", 256)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.filename", "")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 7)
	v.SetDefault("log.file.max_age_days", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", DevJWTSecret)
	v.SetDefault("jwt.issuer", "portfolio-api")
	v.SetDefault("jwt.ttl", 7*24*time.Hour)

	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.allow_registration", true)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", defaultSQLiteDSN)
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime_min", 30)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.rps", 200)
	v.SetDefault("ratelimit.burst", 400)
	v.SetDefault("ratelimit.public_max", 100)
	v.SetDefault("ratelimit.public_window", 15*time.Minute)

	v.SetDefault("cors.origins", []string{"*"})

	v.SetDefault("mail.provider", "smtp")
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "noreply@portfolio.com")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.mailgun_domain", "")
	v.SetDefault("mail.mailgun_api_key", "")
	v.SetDefault("mail.mailgun_base_url", "")
	v.SetDefault("mail.timeout", 10*time.Second)

	v.SetDefault("upload.driver", "local")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.url_prefix", "/uploads")
	v.SetDefault("upload.max_file_mb", 5)
	v.SetDefault("upload.cloudinary.cloud_name", "")
	v.SetDefault("upload.cloudinary.api_key", "")
	v.SetDefault("upload.cloudinary.api_secret", "")
	v.SetDefault("upload.cloudinary.folder", "portfolio")
}

// legacyEnv keeps the deployment variable names of the first version working.
var legacyEnv = map[string][]string{
	"app.http.port":                {"PORT"},
	"app.env":                      {"NODE_ENV", "APP_ENV"},
	"jwt.secret":                   {"JWT_SECRET"},
	"db.dsn":                       {"DATABASE_URL"},
	"cors.origins":                 {"CORS_ORIGIN"},
	"mail.username":                {"EMAIL_USER"},
	"mail.password":                {"EMAIL_PASS"},
	"mail.from":                    {"EMAIL_FROM"},
	"mail.to":                      {"ADMIN_EMAIL"},
	"upload.cloudinary.cloud_name": {"CLOUDINARY_CLOUD_NAME"},
	"upload.cloudinary.api_key":    {"CLOUDINARY_API_KEY"},
	"upload.cloudinary.api_secret": {"CLOUDINARY_API_SECRET"},
}

// Load reads the optional YAML file at path (or CONFIG_PATH), then applies APP_* and legacy env vars.
// A missing file is not an error; every key has a development default.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		envs := append([]string{"APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = DefaultPath
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.CORS.Origins = splitOrigins(c.CORS.Origins)
	return &c, nil
}

func splitOrigins(in []string) []string {
	var out []string
	for _, o := range in {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.HTTP.Host, c.App.HTTP.Port)
}

func (c *Config) MailConfigured() bool {
	switch c.Mail.Provider {
	case "smtp":
		return c.Mail.Host != "" && c.Mail.Username != "" && c.Mail.Password != ""
	case "mailgun":
		return c.Mail.MailgunDomain != "" && c.Mail.MailgunAPIKey != ""
	}
	return false
}

// Warnings lists insecure or degraded settings. The server logs them and starts anyway.
func (c *Config) Warnings() []string {
	var w []string
	if c.JWT.Secret == "" || c.JWT.Secret == DevJWTSecret {
		w = append(w, "jwt.secret is using the development default; set JWT_SECRET")
	} else if len(c.JWT.Secret) < 32 {
		w = append(w, "jwt.secret is shorter than 32 characters")
	}
	if c.DB.Driver == "sqlite" && c.App.IsProduction() {
		w = append(w, "db.driver is sqlite in production")
	}
	if slices.Contains(c.CORS.Origins, "*") && c.App.IsProduction() {
		w = append(w, "cors.origins allows any origin in production")
	}
	if !c.MailConfigured() {
		w = append(w, "mail transport is not configured; contact notifications are disabled")
	}
	if c.Mail.To == "" && c.MailConfigured() {
		w = append(w, "mail.to is empty; notifications go to mail.from")
	}
	if c.Auth.BcryptCost < 10 {
		w = append(w, "auth.bcrypt_cost is below 10")
	}
	return w
}
