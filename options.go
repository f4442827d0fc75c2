package nativefs

import (
	"io/fs"

	"go.uber.org/zap"
)

const (
	// defaultDirMode is used by CreateDirectories unless overridden.
	defaultDirMode fs.FileMode = 0755

	// defaultTempPrefix names the temporary files created by the
	// creation-time capability probe.
	defaultTempPrefix = ".nativefs-probe-"
)

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithLogger attaches a structured logger to the gateway. The gateway is
// silent by default; with a logger it emits debug-level entries for
// side-effecting operations.
func WithLogger(logger *zap.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithDirMode sets the permission bits used by CreateDirectories.
func WithDirMode(mode fs.FileMode) GatewayOption {
	return func(g *Gateway) {
		g.dirMode = mode
	}
}

// WithTempPrefix sets the name prefix of the temporary files created by the
// creation-time capability probe.
func WithTempPrefix(prefix string) GatewayOption {
	return func(g *Gateway) {
		if prefix != "" {
			g.tempPrefix = prefix
		}
	}
}
