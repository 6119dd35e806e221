package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configSearchPaths are tried in order when no config file is given.
var configSearchPaths = []string{
	"./config.yml",
	"./config.yaml",
	"./config/config.yml",
	"./config/config.yaml",
}

type loadOptions struct {
	configFile string
	envFile    string
	envPrefix  string
	defaults   map[string]any
}

// Option customizes Load.
type Option func(*loadOptions)

// WithConfigFile reads path instead of searching the default locations.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = path }
}

// WithEnvFile loads path into the environment before binding. The default is
// ./.env when present.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// WithEnvPrefix requires environment overrides to carry PREFIX_.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// WithDefault sets a value used when neither the file nor the environment
// provides key.
func WithDefault(key string, value any) Option {
	return func(o *loadOptions) {
		if o.defaults == nil {
			o.defaults = make(map[string]any)
		}
		o.defaults[key] = value
	}
}

// Load unmarshals the layered configuration for service into cfg, which must
// be a pointer to a struct with mapstructure tags. A missing config file is
// not an error. A file that exists but cannot be parsed is.
func Load(service string, cfg any, opts ...Option) error {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	envFile := o.envFile
	if envFile == "" && exists(".env") {
		envFile = ".env"
	}
	if envFile != "" {
		// godotenv.Load never overrides variables already set.
		if err := godotenv.Load(envFile); err != nil && o.envFile != "" {
			return fmt.Errorf("config %s: load env file %s: %w", service, envFile, err)
		}
	}

	v := viper.New()
	for key, value := range o.defaults {
		v.SetDefault(key, value)
	}

	file := o.configFile
	if file == "" {
		file = findConfigFile()
	}
	if file != "" && exists(file) {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config %s: read %s: %w", service, file, err)
		}
	}

	if o.envPrefix != "" {
		v.SetEnvPrefix(o.envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v, o.envPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config %s: unmarshal: %w", service, err)
	}
	return nil
}

func findConfigFile() string {
	for _, path := range configSearchPaths {
		if exists(path) {
			return path
		}
	}
	return ""
}

// bindEnv registers every environment variable as a dotted key so that
// Unmarshal sees keys absent from the config file. Only the underscore to dot
// variant is bound; keys whose names contain underscores need the file to
// declare them or AutomaticEnv to resolve them.
func bindEnv(v *viper.Viper, prefix string) {
	want := ""
	if prefix != "" {
		want = strings.ToUpper(prefix) + "_"
	}
	for _, kv := range os.Environ() {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, want) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, want))
		if key == "" {
			continue
		}
		_ = v.BindEnv(strings.ReplaceAll(key, "_", "."), name)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
