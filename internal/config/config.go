package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds everything the site needs at startup.
type Config struct {
	Port     string `yaml:"port" validate:"required,numeric"`
	GinMode  string `yaml:"gin_mode" validate:"omitempty,oneof=debug release test"`
	LogLevel string `yaml:"log_level"`
	// LogFormat is "json", "console" or "auto" (console when stdout is a terminal).
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=auto json console"`

	DataURL  string `yaml:"data_url" validate:"required_without=DataFile"`
	DataFile string `yaml:"data_file" validate:"required_without=DataURL"`

	UploadBaseURL string `yaml:"upload_base_url" validate:"omitempty,url"`
	UploadPrefix  string `yaml:"upload_prefix" validate:"required,startswith=/"`

	// ContactEndpoint is the backend base URL the contact form posts to.
	// Empty means the in-process backend handles submissions.
	ContactEndpoint string `yaml:"contact_endpoint" validate:"omitempty,url"`

	DatabasePath string `yaml:"database_path" validate:"required"`

	SMTP  SMTPConfig  `yaml:"smtp"`
	Admin AdminConfig `yaml:"admin"`
}

// SMTPConfig configures outbound mail for contact messages.
type SMTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	To   string `yaml:"to" validate:"omitempty,email"`
}

// Enabled reports whether credentials were supplied.
func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

// AdminConfig holds the admin login credentials.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Defaulted is set when either credential fell back to the development default.
	Defaulted bool `yaml:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:         "8080",
		LogFormat:    "auto",
		UploadPrefix: "/uploads",
		DatabasePath: "folio.db",
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
	}
}

// Load reads the optional YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	if path != "" {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read config file %s", path)
			return cfg, err
		}

		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file %s", path)
			return cfg, err
		}
	}

	applyEnv(&cfg)
	applyAdminDefaults(&cfg)

	err = Validate(cfg)
	return cfg, err
}

// Validate checks the struct tags on cfg.
func Validate(cfg Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return errors.Errorf("invalid config: %s failed %q", first.Namespace(), first.Tag())
	}
	return errors.Wrap(err, "invalid config")
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"PORT", &cfg.Port},
		{"GIN_MODE", &cfg.GinMode},
		{"LOG_LEVEL", &cfg.LogLevel},
		{"LOG_FORMAT", &cfg.LogFormat},
		{"PORTFOLIO_DATA_URL", &cfg.DataURL},
		{"PORTFOLIO_DATA_FILE", &cfg.DataFile},
		{"UPLOAD_BASE_URL", &cfg.UploadBaseURL},
		{"UPLOAD_PREFIX", &cfg.UploadPrefix},
		{"CONTACT_ENDPOINT", &cfg.ContactEndpoint},
		{"DATABASE_PATH", &cfg.DatabasePath},
		{"SMTP_HOST", &cfg.SMTP.Host},
		{"SMTP_PORT", &cfg.SMTP.Port},
		{"SMTP_USER", &cfg.SMTP.User},
		{"SMTP_PASS", &cfg.SMTP.Pass},
		{"TO_EMAIL", &cfg.SMTP.To},
		{"ADMIN_USERNAME", &cfg.Admin.Username},
		{"ADMIN_PASSWORD", &cfg.Admin.Password},
	}

	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.target = v
		}
	}
}

// Default credentials for development (set ADMIN_USERNAME and ADMIN_PASSWORD in production)
func applyAdminDefaults(cfg *Config) {
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
		cfg.Admin.Defaulted = true
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
		cfg.Admin.Defaulted = true
	}
}
