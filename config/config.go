package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

type Config struct {
	Port            string        `koanf:"port"`
	DBDriver        string        `koanf:"db_driver"`
	DBURL           string        `koanf:"db_url"`
	DBLogLevel      string        `koanf:"db_log_level"`
	JWTSecretKey    string        `koanf:"jwt_secret_key"`
	JWTIssuer       string        `koanf:"jwt_issuer"`
	JWTAudience     string        `koanf:"jwt_audience"`
	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
	LogLevel        string        `koanf:"log_level"`
}

// defaults is a koanf provider for the built-in values.
type defaults map[string]any

func (d defaults) ReadBytes() ([]byte, error) {
	return nil, errors.New("defaults provider does not support ReadBytes")
}

func (d defaults) Read() (map[string]any, error) {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out, nil
}

var builtin = defaults{
	"port":              "8080",
	"db_driver":         "postgres",
	"db_url":            "",
	"db_log_level":      "warn",
	"jwt_secret_key":    "",
	"jwt_issuer":        "flashdeck-api",
	"jwt_audience":      "flashdeck",
	"access_token_ttl":  "5m",
	"refresh_token_ttl": "24h",
	"allowed_origins":   "http://localhost:3000",
	"log_level":         "info",
}

// Flags registers the command-line overrides on fs.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("port", "", "HTTP listen port")
	fs.String("db-driver", "", "database driver: postgres or sqlite")
	fs.String("db-url", "", "database connection string")
	fs.String("log-level", "", "log level: debug, info, warn or error")
}

// Load layers configuration from built-in defaults, an optional YAML file,
// the environment and finally flags that were set explicitly. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(builtin, nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := os.Getenv("CONFIG_FILE")
	if fs != nil {
		if p, err := fs.GetString("config"); err == nil && p != "" {
			path = p
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if fs != nil {
		flagKey := func(f *pflag.Flag) (string, any) {
			if f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
		}
		if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, flagKey), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps JWT_SECRET_KEY to jwt_secret_key. Unknown variables are dropped.
func envKey(name string) string {
	key := strings.ToLower(name)
	if _, ok := builtin[key]; !ok {
		return ""
	}
	return key
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY not set"))
	}
	if c.DBURL == "" {
		errs = append(errs, errors.New("DB_URL not set"))
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported db_driver %q", c.DBDriver))
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}
	return errors.Join(errs...)
}
