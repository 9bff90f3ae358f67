package db

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL  = "mysql"
	DriverPgx    = "pgx"
	DriverMemory = "memory"

	DefaultConfigPath = "config/config.yaml"
	DefaultAddr       = ":8443"
	DefaultTokenTTL   = 24 * time.Hour
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql | pgx | memory
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	Certificate Certs  `yaml:"certificate"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// 初回起動時に作成する管理者
type BootstrapConfig struct {
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
	AdminName     string `yaml:"admin_name"`
}

type SchoolConfig struct {
	// 登録時に週末・未来日を拒否する
	RejectDisabledDates bool `yaml:"reject_disabled_dates"`
}

type Config struct {
	Version   string          `yaml:"version"`
	Mode      string          `yaml:"mode"`
	Server    ServerConfig    `yaml:"server"`
	DB        DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	School    SchoolConfig    `yaml:"school"`
}

// LoadConfig: YAML を読み込み、.env / 環境変数で秘密情報を上書きする
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込み失敗: %w", err)
	}
	cfg, err := ParseConfig(buf)
	if err != nil {
		return nil, err
	}

	// .env は任意（無ければ無視）
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf(".env の読み込み失敗: %w", err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func ParseConfig(buf []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルのパース失敗: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.DB.Driver == "" {
		c.DB.Driver = DriverMySQL
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
}

func (c *Config) Validate() error {
	if c.Mode != "dev" && c.Mode != "release" {
		return fmt.Errorf("mode must be dev or release (got %q)", c.Mode)
	}
	switch c.DB.Driver {
	case DriverMySQL, DriverPgx, DriverMemory:
	default:
		return fmt.Errorf("database.driver must be mysql, pgx or memory (got %q)", c.DB.Driver)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PRESENCE_JWT_SECRET"); ok && v != "" {
		c.Auth.JWTSecret = v
	}
	if v, ok := lookup("PRESENCE_DB_PASSWORD"); ok && v != "" {
		c.DB.Password = v
	}
	if v, ok := lookup("PRESENCE_ADMIN_PASSWORD"); ok && v != "" {
		c.Bootstrap.AdminPassword = v
	}
}

// TLSEnabled: 証明書が両方指定されていれば HTTPS で起動する
func (c *Config) TLSEnabled() bool {
	return c.Server.Certificate.Cert != "" && c.Server.Certificate.Key != ""
}

func dsn(c DatabaseConfig) string {
	if c.Driver == DriverPgx {
		// ユーザー名・パスワードの記号はエスケープする
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.Username, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=disable&connect_timeout=3",
		}
		return u.String()
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&tls=false&timeout=3s&readTimeout=5s&writeTimeout=5s&loc=UTC",
		c.Username, c.Password, c.Host, c.Port, c.DBName)
}

func Connect(c DatabaseConfig) (*sql.DB, error) {
	if c.Driver == DriverMemory {
		return nil, fmt.Errorf("driver %q has no SQL connection", c.Driver)
	}
	db, err := sql.Open(c.Driver, dsn(c))
	if err != nil {
		return nil, fmt.Errorf("接続準備に失敗: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("DB接続に失敗: %w", err)
	}

	// 書き込みはカテゴリ単位の行ロックなので小さめのプールで足りる
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
