package config

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	defaultMPDAddress = "localhost:6600"
	defaultIdentity   = "mediasessiond"
)

// AppConfig holds application configuration
type AppConfig struct {
	logger      *zap.Logger
	mpdAddress  string
	mpdPassword string
	identity    string
	cacheDir    string
	artTemplate string
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger) *AppConfig {
	// Read from environment variables or use defaults
	mpdAddress := os.Getenv("MEDIASESSIOND_MPD_ADDRESS")
	if mpdAddress == "" {
		mpdAddress = defaultMPDAddress
	}

	identity := os.Getenv("MEDIASESSIOND_IDENTITY")
	if identity == "" {
		identity = defaultIdentity
	}

	cacheDir := os.Getenv("MEDIASESSIOND_CACHE_DIR")
	if cacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(base, "mediasessiond")
		} else {
			cacheDir = filepath.Join(os.TempDir(), "mediasessiond")
		}
	}

	// Expand path if it contains ~ or environment variables
	cacheDir = os.ExpandEnv(cacheDir)
	if len(cacheDir) > 0 && cacheDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			cacheDir = filepath.Join(home, cacheDir[1:])
		}
	}

	cfg := &AppConfig{
		logger:      logger,
		mpdAddress:  mpdAddress,
		mpdPassword: os.Getenv("MEDIASESSIOND_MPD_PASSWORD"),
		identity:    identity,
		cacheDir:    cacheDir,
		artTemplate: os.Getenv("MEDIASESSIOND_ART_URL"),
	}

	logger.Info("Configuration loaded",
		zap.String("mpdAddress", cfg.mpdAddress),
		zap.String("identity", cfg.identity),
		zap.String("cacheDir", cfg.cacheDir),
		zap.Bool("artURLTemplate", cfg.artTemplate != ""))

	return cfg
}

// GetMPDAddress returns the MPD server address
func (c *AppConfig) GetMPDAddress() string {
	return c.mpdAddress
}

// GetMPDPassword returns the MPD password, empty when unset
func (c *AppConfig) GetMPDPassword() string {
	return c.mpdPassword
}

// GetIdentity returns the name presented on the media-control surface
func (c *AppConfig) GetIdentity() string {
	return c.identity
}

// GetCacheDir returns the directory for cached artwork
func (c *AppConfig) GetCacheDir() string {
	return c.cacheDir
}

// GetArtURLTemplate returns the optional artwork URL template
// (a printf-style template receiving the escaped track file path)
func (c *AppConfig) GetArtURLTemplate() string {
	return c.artTemplate
}
