package config

import "os"

const (
	DefaultPublicPath = "public"
	DefaultDataPath   = "data"

	PublicPathEnv = "PUBLIC_PATH"
	DataPathEnv   = "DATA_PATH"
)

// Config holds the root directories the handlers read from. It is built once
// at startup and shared read-only between connections.
type Config struct {
	PublicPath string
	DataPath   string
}

func Default() Config {
	return Config{
		PublicPath: DefaultPublicPath,
		DataPath:   DefaultDataPath,
	}
}

// FromEnv applies PUBLIC_PATH and DATA_PATH over the defaults. Empty values
// are treated as unset.
func FromEnv(lookup func(string) (string, bool)) Config {
	cfg := Default()
	if v, ok := lookup(PublicPathEnv); ok && v != "" {
		cfg.PublicPath = v
	}
	if v, ok := lookup(DataPathEnv); ok && v != "" {
		cfg.DataPath = v
	}
	return cfg
}

func Load() Config {
	return FromEnv(os.LookupEnv)
}
