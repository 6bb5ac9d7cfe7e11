// Package config loads the site configuration from YAML, environment
// variables and built-in defaults.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/consultorvarela/portfolio/internal/logging"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: PORTFOLIO_CONTACT__RELAY sets contact.relay.
const EnvPrefix = "PORTFOLIO_"

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "portfolio.yml"

type RelayType string

const (
	RelayEmailJS RelayType = "emailjs"
	RelaySMTP    RelayType = "smtp"
	RelayLog     RelayType = "log"
)

// Config corresponds to portfolio.yml.
type Config struct {
	Port         string          `yaml:"port" koanf:"port"`
	BaseURL      string          `yaml:"base_url" koanf:"base_url"`
	Mode         string          `yaml:"mode" koanf:"mode"`
	DataDir      string          `yaml:"data_dir" koanf:"data_dir"`
	StaticDir    string          `yaml:"static_dir" koanf:"static_dir"`
	TemplatesDir string          `yaml:"templates_dir" koanf:"templates_dir"`
	Watch        bool            `yaml:"watch" koanf:"watch"`
	SecureCookie bool            `yaml:"secure_cookie" koanf:"secure_cookie"`
	Logging      logging.Config  `yaml:"logging" koanf:"logging"`
	Contact      ContactConfig   `yaml:"contact" koanf:"contact"`
	Admin        AdminConfig     `yaml:"admin" koanf:"admin"`
	Analytics    AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
}

type ContactConfig struct {
	Relay   RelayType     `yaml:"relay" koanf:"relay"`
	EmailJS EmailJSConfig `yaml:"emailjs" koanf:"emailjs"`
	SMTP    SMTPConfig    `yaml:"smtp" koanf:"smtp"`
}

type EmailJSConfig struct {
	ServiceID  string `yaml:"service_id" koanf:"service_id"`
	TemplateID string `yaml:"template_id" koanf:"template_id"`
	PublicKey  string `yaml:"public_key" koanf:"public_key"`
}

type SMTPConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port string `yaml:"port" koanf:"port"`
	User string `yaml:"user" koanf:"user"`
	Pass string `yaml:"pass" koanf:"pass"`
	To   string `yaml:"to" koanf:"to"`
}

// AdminConfig protects /admin with basic auth. The admin routes are not
// registered while Password is empty.
type AdminConfig struct {
	User     string `yaml:"user" koanf:"user"`
	Password string `yaml:"password" koanf:"password"`
}

type AnalyticsConfig struct {
	Enabled         bool   `yaml:"enabled" koanf:"enabled"`
	RetentionMonths int    `yaml:"retention_months" koanf:"retention_months"`
	Salt            string `yaml:"salt" koanf:"salt"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:      "8080",
		BaseURL:   "https://www.consultorvarela.com",
		Mode:      gin.ReleaseMode,
		DataDir:   "data",
		StaticDir: "static",
		Logging:   logging.Config{Level: "normal", Format: "console"},
		Contact: ContactConfig{
			Relay: RelayEmailJS,
			SMTP:  SMTPConfig{Host: "smtp.gmail.com", Port: "587"},
		},
		Admin:     AdminConfig{User: "admin"},
		Analytics: AnalyticsConfig{Enabled: true, RetentionMonths: 12},
	}
}

// Load reads configuration from the given YAML file, when it exists, then
// overlays PORTFOLIO_* environment variables and the plain variables the
// site has always honoured (PORT, SMTP_*, TO_EMAIL, ADMIN_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.applyPlainEnv()
	return cfg, nil
}

func (c *Config) applyPlainEnv() {
	set := func(dst *string, name string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	set(&c.Port, "PORT")
	set(&c.Contact.SMTP.Host, "SMTP_HOST")
	set(&c.Contact.SMTP.Port, "SMTP_PORT")
	set(&c.Contact.SMTP.User, "SMTP_USER")
	set(&c.Contact.SMTP.Pass, "SMTP_PASS")
	set(&c.Contact.SMTP.To, "TO_EMAIL")
	set(&c.Admin.User, "ADMIN_USERNAME")
	set(&c.Admin.Password, "ADMIN_PASSWORD")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// Redacted returns a copy with secrets masked, for display.
func (c *Config) Redacted() *Config {
	r := *c
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	r.Contact.SMTP.Pass = mask(r.Contact.SMTP.Pass)
	r.Contact.EmailJS.PublicKey = mask(r.Contact.EmailJS.PublicKey)
	r.Admin.Password = mask(r.Admin.Password)
	r.Analytics.Salt = mask(r.Analytics.Salt)
	return &r
}

var validModes = map[string]bool{
	gin.DebugMode:   true,
	gin.ReleaseMode: true,
	gin.TestMode:    true,
}

var validRelays = map[RelayType]bool{
	RelayEmailJS: true,
	RelaySMTP:    true,
	RelayLog:     true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute URL", c.BaseURL)
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if !validRelays[c.Contact.Relay] {
		return fmt.Errorf("invalid contact.relay %q: must be one of emailjs, smtp, log", c.Contact.Relay)
	}
	if c.Watch && c.TemplatesDir == "" {
		return fmt.Errorf("watch requires templates_dir")
	}
	if c.Analytics.Enabled && c.DataDir == "" {
		return fmt.Errorf("data_dir is required when analytics is enabled")
	}
	if c.Analytics.RetentionMonths < 0 {
		return fmt.Errorf("analytics.retention_months must be non-negative")
	}
	return nil
}
