package config

import (
	"reflect"
	"strings"

	"guardias/core/database"
	"guardias/core/feed"
	"guardias/core/logger"
	"guardias/core/server"
	"guardias/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage that keeps fallback snapshots.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the school database (reportes, profesores, grupos).
	Database database.Config `mapstructure:"database"`
	// Feed holds configuration for the remote CSV, JSON and document-store feeds.
	Feed feed.Config `mapstructure:"feed"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load the .env file next to the binary or in path, when present
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine in production; the environment alone is enough
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// 2. Register every key with its default from the struct tags
	bindValues(v, Config{}, "")

	// 3. Map environment variables to nested keys (e.g. FEED_CSV_URL -> feed.csv_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Decode into the typed config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every 'mapstructure' key in Viper,
// using the 'default' tag as its default value.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// Accept pointers to config structs as well
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Untagged fields are not configuration
		if tag == "" {
			continue
		}

		// Nested keys are dotted (feed.timeout_seconds)
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Partial configs such as feed.Config recurse under their own prefix
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
