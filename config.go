package nativefs

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/gobeaver/beaver-kit/config"
)

// Config holds environment-driven settings for an OS-backed gateway.
// Permission modes are octal strings, matching the conventional notation.
type Config struct {
	// TempFilePrefix names the temporary files created by the
	// creation-time capability probe.
	TempFilePrefix string `env:"NATIVEFS_TEMP_PREFIX,default:.nativefs-probe-"`

	// DirMode is the permission applied by CreateDirectories.
	DirMode string `env:"NATIVEFS_DIR_MODE,default:0755"`

	// FileMode is the permission applied to files created through Open.
	FileMode string `env:"NATIVEFS_FILE_MODE,default:0644"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromConfig builds an OS-backed Gateway from a Config. Additional options
// are applied after the config-derived ones, so callers can override.
func FromConfig(cfg *Config, opts ...GatewayOption) (*Gateway, error) {
	dirMode, err := parseMode(cfg.DirMode, defaultDirMode)
	if err != nil {
		return nil, fmt.Errorf("invalid dir mode %q: %w", cfg.DirMode, err)
	}
	fileMode, err := parseMode(cfg.FileMode, 0644)
	if err != nil {
		return nil, fmt.Errorf("invalid file mode %q: %w", cfg.FileMode, err)
	}

	native := NewOSFS()
	native.FilePerm = fileMode

	all := append([]GatewayOption{
		WithDirMode(dirMode),
		WithTempPrefix(cfg.TempFilePrefix),
	}, opts...)
	return New(native, all...), nil
}

func parseMode(s string, fallback fs.FileMode) (fs.FileMode, error) {
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	return fs.FileMode(v), nil
}
