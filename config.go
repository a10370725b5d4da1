package newsletter

import "time"

// Config represents the main config
type Config struct {
	DB struct {
		Type string // "postgres", "bolt"
		URL  string
		Path string

		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
	}

	HTTP struct {
		Addr          string
		InsertTimeout time.Duration
	}

	Log struct {
		Level string
	}

	Sentry struct {
		DSN string
	}
}
