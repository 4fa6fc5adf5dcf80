// Package config loads the options of the pos tool.
//
// Options are read from a file (options.yaml by default, any format viper
// knows by extension) and can be overridden by environment variables prefixed
// with POSITIONS_, like POSITIONS_ORDERS_PER_PAGE=20.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/etnz/positions"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the options file used when none is given.
const DefaultPath = "options.yaml"

// EnvPrefix prefixes environment variables overriding the options.
const EnvPrefix = "POSITIONS"

// Options are the user preferences.
type Options struct {
	PositionsPerPage    int              `mapstructure:"positions_per_page"`
	OrdersPerPage       int              `mapstructure:"orders_per_page"`
	HideClosedPositions bool             `mapstructure:"hide_closed_positions"`
	StorageFilePath     string           `mapstructure:"storage_file_path"`
	Currency            string           `mapstructure:"currency"`
	LogFile             string           `mapstructure:"log_file"`
	LogLevel            string           `mapstructure:"log_level"`
	SortBy              positions.SortBy `mapstructure:"sort_by"`
}

// defaults returns the default settings, keyed as in the options file.
func defaults() map[string]any {
	return map[string]any{
		"positions_per_page":    10,
		"orders_per_page":       10,
		"hide_closed_positions": false,
		"storage_file_path":     positions.DefaultStoragePath,
		"currency":              "USD",
		"log_file":              "",
		"log_level":             "warn",
		"sort_by":               positions.DefaultSortBy.String(),
	}
}

// Default returns the options used when nothing is configured.
func Default() *Options {
	return &Options{
		PositionsPerPage: 10,
		OrdersPerPage:    10,
		StorageFilePath:  positions.DefaultStoragePath,
		Currency:         "USD",
		LogLevel:         "warn",
		SortBy:           positions.DefaultSortBy,
	}
}

// Load reads the options file at path, creating it with the default values
// when it does not exist. An empty path only uses defaults and environment.
func Load(path string) (*Options, error) {
	v := viper.New()
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		if err := WriteDefaults(path); err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading options file failed (%s): %w", path, err)
		}
	}

	var opts Options
	if err := v.Unmarshal(&opts, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		sortByHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("parsing options failed: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// WriteDefaults writes the default options to path, unless the file exists.
func WriteDefaults(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to access options file %q: %w", path, err)
	}
	data, err := yaml.Marshal(defaults())
	if err != nil {
		return fmt.Errorf("failed to encode default options: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write default options file: %w", err)
	}
	slog.Info("created options file with default values", "path", path)
	return nil
}

// sortByHook decodes "field:direction" strings into a positions.SortBy.
func sortByHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(positions.SortBy{}) {
		return data, nil
	}
	return positions.ParseSortBy(data.(string))
}

// Validate checks the option values.
func (o *Options) Validate() error {
	if o.PositionsPerPage <= 0 {
		return fmt.Errorf("positions_per_page must be positive")
	}
	if o.OrdersPerPage <= 0 {
		return fmt.Errorf("orders_per_page must be positive")
	}
	if strings.TrimSpace(o.StorageFilePath) == "" {
		return fmt.Errorf("storage_file_path cannot be empty")
	}
	if !positions.KnownCurrency(o.Currency) {
		return fmt.Errorf("unknown currency %q", o.Currency)
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the log level as a slog.Level.
func (o *Options) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log_level %q: %w", o.LogLevel, err)
	}
	return l, nil
}

// Store returns the storage configured by the options.
func (o *Options) Store() *positions.Store {
	return &positions.Store{
		Path:     o.StorageFilePath,
		Currency: o.Currency,
		SortBy:   o.SortBy,
	}
}
