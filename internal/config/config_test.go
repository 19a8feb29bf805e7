package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(t.TempDir())
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, BackendSQLite, cfg.Database.Backend)
	assert.Equal(t, "./data/clinicdb.sqlite", cfg.Database.Path)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.True(t, cfg.Mail.SSL)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Mail.Secrets.Password)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLINIC_DATABASE_BACKEND", "postgres")
	t.Setenv("CLINIC_DATABASE_HOST", "db.internal")
	t.Setenv("CLINIC_DATABASE_NAME", "clinic")
	t.Setenv("CLINIC_CACHE_TTL", "90s")
	t.Setenv("SMTP_USERNAME", "relay@example.com")
	t.Setenv("SMTP_PASSWORD", "s3cret")

	cfg, err := load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Database.Backend)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "relay@example.com", cfg.Mail.Secrets.Username)
	assert.Equal(t, "s3cret", cfg.Mail.Secrets.Password)
	assert.Equal(t,
		"postgres://db.internal:5432/clinic?sslmode=disable",
		cfg.Database.PostgresDSN())
}

func TestLoad_PortVariable(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)

	t.Setenv("CLINIC_SERVER_PORT", "9090")
	cfg, err = load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "explicit CLINIC_SERVER_PORT wins over PORT")
}

func TestLoad_InvalidPortVariable(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := load(newViper(t))
	assert.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  port: 8181
  static_dir: ./public
database:
  backend: sqlite
  path: /tmp/clinic.sqlite
cache:
  enabled: true
  backend: redis
  redis_url: redis://cache:6379/1
logging:
  level: debug
`), 0o600))

	v := viper.New()
	v.SetConfigFile(file)

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "./public", cfg.Server.StaticDir)
	assert.Equal(t, "/tmp/clinic.sqlite", cfg.Database.Path)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis://cache:6379/1", cfg.Cache.RedisURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Backend: BackendSQLite, Path: "clinic.sqlite"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid sqlite", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"unknown backend", func(c *Config) { c.Database.Backend = "mongo" }, true},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }, true},
		{"postgres without host", func(c *Config) {
			c.Database = DatabaseConfig{Backend: BackendPostgres, Name: "clinic"}
		}, true},
		{"postgres complete", func(c *Config) {
			c.Database = DatabaseConfig{Backend: BackendPostgres, Host: "db", Name: "clinic"}
		}, false},
		{"unknown cache backend", func(c *Config) {
			c.Cache = CacheConfig{Enabled: true, Backend: "memcached"}
		}, true},
		{"disabled cache ignores backend", func(c *Config) {
			c.Cache = CacheConfig{Backend: "memcached"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "no credentials",
			cfg:  DatabaseConfig{Host: "db", Port: 5432, Name: "clinic", SSLMode: "disable"},
			want: "postgres://db:5432/clinic?sslmode=disable",
		},
		{
			name: "plain credentials",
			cfg:  DatabaseConfig{Host: "db", Port: 5433, User: "clinic", Password: "secret", Name: "clinic", SSLMode: "require"},
			want: "postgres://clinic:secret@db:5433/clinic?sslmode=require",
		},
		{
			name: "password with space and quotes",
			cfg:  DatabaseConfig{Host: "db", Port: 5432, User: "clinic", Password: `p a'ss"@/`, Name: "clinic"},
			want: "postgres://clinic:p%20a%27ss%22%40%2F@db:5432/clinic",
		},
		{
			name: "ipv6 host",
			cfg:  DatabaseConfig{Host: "::1", Port: 5432, Name: "clinic", SSLMode: "disable"},
			want: "postgres://[::1]:5432/clinic?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.cfg.PostgresDSN()
			assert.Equal(t, tt.want, dsn)

			parsed, err := url.Parse(dsn)
			require.NoError(t, err)
			password, _ := parsed.User.Password()
			assert.Equal(t, tt.cfg.User, parsed.User.Username())
			assert.Equal(t, tt.cfg.Password, password)
		})
	}
}
