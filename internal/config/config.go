// Package config assembles the server configuration from defaults,
// environment variables and command-line flags, in that order.
package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/seamline/backoffice/internal/mail"
)

// Config holds the runtime settings of the API server.
type Config struct {
	Addr          string
	DatabasePath  string
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	SMTP          mail.SMTPConfig
	LogLevel      string
}

// LoadDefaults populates development defaults. The secrets are
// placeholders and must be overridden outside local development.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabasePath = "backoffice.db"
	c.AccessSecret = "dev-access-secret"
	c.RefreshSecret = "dev-refresh-secret"
	c.AccessTTL = time.Hour
	c.RefreshTTL = 7 * 24 * time.Hour
	c.SMTP = mail.SMTPConfig{
		Host:     "localhost",
		Port:     25,
		From:     "no-reply@seamline.local",
		FromName: "Seamline Back Office",
	}
	c.LogLevel = "info"
}

// Load builds the configuration: defaults, then environment, then
// flags.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.loadEnv()
	cfg.parseFlags(os.Args[1:])
	return cfg
}

func (c *Config) loadEnv() {
	setString(&c.Addr, "ADDRESS")
	setString(&c.DatabasePath, "DATABASE_PATH")
	setString(&c.AccessSecret, "ACCESS_TOKEN_SECRET")
	setString(&c.RefreshSecret, "REFRESH_TOKEN_SECRET")
	setDuration(&c.AccessTTL, "ACCESS_TOKEN_TTL")
	setDuration(&c.RefreshTTL, "REFRESH_TOKEN_TTL")
	setString(&c.SMTP.Host, "SMTP_HOST")
	setInt(&c.SMTP.Port, "SMTP_PORT")
	setString(&c.SMTP.Username, "SMTP_USERNAME")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.From, "SMTP_FROM")
	setString(&c.SMTP.FromName, "SMTP_FROM_NAME")
	setString(&c.LogLevel, "LOG_LEVEL")
}

func (c *Config) parseFlags(args []string) {
	fs := flag.NewFlagSet("server", flag.ExitOnError)

	fs.StringVar(&c.Addr, "a", c.Addr, "address and port to listen on")
	fs.StringVar(&c.DatabasePath, "d", c.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level (debug, info, warn, error)")

	accessTTL := fs.Int("t", int(c.AccessTTL.Minutes()), "access token validity in minutes")
	refreshTTL := fs.Int("r", int(c.RefreshTTL.Minutes()), "refresh token validity in minutes")

	_ = fs.Parse(args)

	// The flags count whole minutes, so re-deriving the durations
	// unconditionally would truncate a finer-grained env TTL. Only
	// flags that were actually passed win.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			c.AccessTTL = time.Duration(*accessTTL) * time.Minute
		case "r":
			c.RefreshTTL = time.Duration(*refreshTTL) * time.Minute
		}
	})
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
