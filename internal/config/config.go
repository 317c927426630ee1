package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported values for the DBDRIVER variable.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds everything the service reads from its environment.
//
// Usage example on the command line:
// > PORT=8080 DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 GIN_LOGGING=off go run main.go
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV"`
	Host              string        `envconfig:"HOST"`
	Port              int           `envconfig:"PORT"                default:"8080"`
	BasePath          string        `envconfig:"BASE_PATH"           default:"/"`
	GinLogging        string        `envconfig:"GIN_LOGGING"`
	SentryDSN         string        `envconfig:"SENTRY_DSN"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"15s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT"    default:"15s"`

	Log struct {
		Level  string `envconfig:"LOG_LEVEL"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		File   string `envconfig:"LOG_FILE"`
	}

	DB struct {
		Driver    string `envconfig:"DBDRIVER" default:"mysql"`
		Host      string `envconfig:"DBHOST"   default:"localhost:3306"`
		Name      string `envconfig:"DBNAME"   default:"test"`
		User      string `envconfig:"DBUSER"`
		Pass      string `envconfig:"DBPWD"`
		EnableSSL bool   `envconfig:"DBSSL"`
	}
}

// Load reads the configuration from the environment. A .env file in the working directory is
// loaded first if there is one.
func Load() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}
	switch cfg.DB.Driver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("load config error: unsupported DBDRIVER %q", cfg.DB.Driver)
	}
	return cfg, nil
}

// Addr is the address the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DSN builds the data source name for the configured database driver. It is empty for the
// in-memory store.
func (c *Config) DSN() string {
	switch c.DB.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = c.DB.User
		mc.Passwd = c.DB.Pass
		mc.Net = "tcp"
		mc.Addr = c.DB.Host
		mc.DBName = c.DB.Name
		mc.ParseTime = true
		if c.DB.EnableSSL {
			mc.TLSConfig = "true"
		}
		return mc.FormatDSN()
	case DriverPostgres:
		sslmode := "disable"
		if c.DB.EnableSSL {
			sslmode = "require"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DB.User, c.DB.Pass),
			Host:     c.DB.Host,
			Path:     "/" + c.DB.Name,
			RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
		}
		return u.String()
	default:
		return ""
	}
}
