package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Content ContentConfig `mapstructure:"content" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// ContentConfig locates the reading content and fixes the caption
// language.
type ContentConfig struct {
	// MeaningsPath points at the concatenated-JSON meanings document. The
	// file may be absent; the service then runs with placeholder captions.
	MeaningsPath string `mapstructure:"meanings_path" validate:"required"`

	// AssetsDir is the directory of card artwork. Must exist and be
	// non-empty: no cards, no product.
	AssetsDir string `mapstructure:"assets_dir" validate:"required"`

	// Lang is the caption language, "ru" unless overridden.
	Lang string `mapstructure:"lang" validate:"required"`
}
