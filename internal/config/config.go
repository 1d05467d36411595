package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	LogLevel   string

	MySQLDSN          string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	ResetDB           bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret               string
	AdminEmails             map[string]struct{}
	FirebaseCredentialsPath string

	UploadDir        string
	PublicBaseURL    string
	MaxAudioUploadMB int
	MaxImageUploadMB int
	SwaggerHost      string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debugf("config: no .env file loaded: %v", err)
	}

	return &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		MySQLDSN:                mysqlDSN(),
		DBMaxOpenConns:          getEnvInt("DB_MAX_OPEN_CONNS", 10, 1),
		DBMaxIdleConns:          getEnvInt("DB_MAX_IDLE_CONNS", 5, 1),
		DBConnMaxLifetime:       time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30, 1)) * time.Minute,
		ResetDB:                 os.Getenv("RESET_DB") == "true",
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:                 getEnvInt("REDIS_DB", 0, 0),
		RedisPass:               os.Getenv("REDIS_PASSWORD"),
		JWTSecret:               getEnv("JWT_SECRET", "change-me"),
		AdminEmails:             ParseEmailSet(os.Getenv("ADMIN_EMAILS")),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		UploadDir:               getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:           strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		MaxAudioUploadMB:        getEnvInt("MAX_AUDIO_UPLOAD_MB", 50, 1),
		MaxImageUploadMB:        getEnvInt("MAX_IMAGE_UPLOAD_MB", 10, 1),
		SwaggerHost:             os.Getenv("SWAGGER_HOST"),
	}
}

// IsAdminEmail reports whether email is in the admin allow-list.
func (c *Config) IsAdminEmail(email string) bool {
	_, ok := c.AdminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// GommonLevel maps the LOG_LEVEL setting onto a gommon level.
func (c *Config) GommonLevel() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

// ParseEmailSet splits a comma separated list into a lower-cased set.
func ParseEmailSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(part))
		if email != "" {
			set[email] = struct{}{}
		}
	}
	return set
}

// mysqlDSN prefers MYSQL_DSN verbatim and otherwise assembles one from the
// discrete DB_* variables. TiDB Cloud requires TLS, enabled with DB_TLS=true.
func mysqlDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(getEnv("DB_HOST", "127.0.0.1"), getEnv("DB_PORT", "3306"))
	cfg.User = getEnv("DB_USER", "root")
	cfg.Passwd = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnv("DB_NAME", "dcover")
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	if os.Getenv("DB_TLS") == "true" {
		cfg.TLSConfig = "true"
	}
	return cfg.FormatDSN()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def, floor int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= floor {
			return parsed
		}
		log.Warnf("config: invalid %s %q, using default %d", key, v, def)
	}
	return def
}
