package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds optional settings loaded from the TOML config file.
// Every field has a zero-value default so a missing file is never an error;
// command-line flags always take precedence over config values.
type Config struct {
	Index    IndexConfig    `toml:"index"`
	Apk      ApkConfig      `toml:"apk"`
	PlantUML PlantUMLConfig `toml:"plantuml"`
	Cache    CacheConfig    `toml:"cache"`
}

// IndexConfig configures the default APKINDEX location.
type IndexConfig struct {
	// Path is used when --index is not given.
	Path string `toml:"path"`
}

// ApkConfig configures the live lookup command.
type ApkConfig struct {
	// Command overrides the default "apk info --depends" invocation.
	Command []string `toml:"command"`
}

// PlantUMLConfig configures the external PlantUML renderer.
type PlantUMLConfig struct {
	// Jar is the path to plantuml.jar, used when --renderer is not given.
	Jar string `toml:"jar"`
	// Java overrides the java executable used to run the jar.
	Java string `toml:"java"`
}

// CacheConfig configures the lookup cache backend.
type CacheConfig struct {
	// Backend selects the cache: "file" (default), "redis", or "none".
	Backend string `toml:"backend"`
	// RedisAddr is the Redis server address for the redis backend
	// (e.g., "localhost:6379").
	RedisAddr string `toml:"redis_addr"`
}

// loadConfig reads the TOML config from path, or from the default location
// when path is empty. A missing file yields the zero Config; a malformed
// file is an error so typos do not silently fall back to defaults.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// withConfig returns a new context with the given config attached.
func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the config from ctx.
// If no config is attached, it returns the zero Config.
func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return Config{}
}
