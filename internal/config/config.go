package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/danmuck/tlvcodec/internal/logging"
	"github.com/pelletier/go-toml/v2"
)

// CodecConfig is the runtime configuration for tlvctl.
type CodecConfig struct {
	Schema           string `toml:"schema"`
	MaxBodyBytes     int64  `toml:"max_body_bytes"`
	MaxBufferedBytes int64  `toml:"max_buffered_bytes"`
	RetainWriteBytes int64  `toml:"retain_write_bytes"`
	ReadChunkBytes   int    `toml:"read_chunk_bytes"`
	MetricsAddr      string `toml:"metrics_addr"`
	LogLevel         string `toml:"log_level"`
}

func DefaultCodecConfig() CodecConfig {
	return CodecConfig{
		MaxBodyBytes:     8 * 1024 * 1024,
		MaxBufferedBytes: 16 * 1024 * 1024,
		RetainWriteBytes: 64 * 1024,
		ReadChunkBytes:   4096,
	}
}

// LoadCodecConfig reads path and fills unset values from DefaultCodecConfig.
func LoadCodecConfig(path string) (CodecConfig, error) {
	cfg := DefaultCodecConfig()
	if err := loadToml(path, &cfg); err != nil {
		return CodecConfig{}, err
	}
	if err := ValidateCodecConfig(cfg); err != nil {
		return CodecConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateCodecConfig(cfg CodecConfig) error {
	if cfg.MaxBodyBytes <= 0 || cfg.MaxBodyBytes > math.MaxUint32 {
		return fmt.Errorf("max_body_bytes must be in 1..%d", uint32(math.MaxUint32))
	}
	if cfg.MaxBufferedBytes < 0 {
		return fmt.Errorf("max_buffered_bytes must not be negative")
	}
	if cfg.RetainWriteBytes < 0 {
		return fmt.Errorf("retain_write_bytes must not be negative")
	}
	if cfg.ReadChunkBytes <= 0 {
		return fmt.Errorf("read_chunk_bytes must be positive")
	}
	if err := cfg.Limits().Validate(); err != nil {
		return err
	}
	if lvl := strings.TrimSpace(cfg.LogLevel); lvl != "" {
		if _, ok := logging.ParseLevel(lvl); !ok {
			return fmt.Errorf("unknown log_level: %s", cfg.LogLevel)
		}
	}
	return nil
}
