package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Engine    EngineConfig    `yaml:"engine"`
	Provision ProvisionConfig `yaml:"provision"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings. WriteTimeout is generous:
// the first request per direction may download and unpack model
// artifacts before it can answer.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// EngineConfig holds transliteration engine settings.
type EngineConfig struct {
	BeamWidth    int     `yaml:"beam_width"     env:"ENGINE_BEAM_WIDTH"     env-default:"4"`
	Alpha        float64 `yaml:"alpha"          env:"ENGINE_ALPHA"          env-default:"0.9"`
	Rescore      bool    `yaml:"rescore"        env:"ENGINE_RESCORE"        env-default:"true"`
	DefaultTopK  int     `yaml:"default_top_k"  env:"ENGINE_DEFAULT_TOP_K"  env-default:"5"`
	MaxTopK      int     `yaml:"max_top_k"      env:"ENGINE_MAX_TOP_K"      env-default:"10"`
	MaxBatchSize int     `yaml:"max_batch_size" env:"ENGINE_MAX_BATCH_SIZE" env-default:"32"`
	DecoderBin   string  `yaml:"decoder_bin"    env:"ENGINE_DECODER_BIN"    env-default:"fairseq-interactive"`

	// Preload lists directions to construct at startup instead of on
	// first request, e.g. "en2gu,gu2en". Empty means lazy only.
	Preload string `yaml:"preload" env:"ENGINE_PRELOAD" env-default:""`
}

// ProvisionConfig holds model artifact provisioning settings. Empty
// URLs keep the released defaults; ModelsDir empty means a dot
// directory under the user's home.
type ProvisionConfig struct {
	ModelsDir        string        `yaml:"models_dir"           env:"PROVISION_MODELS_DIR"`
	EnToIndicURL     string        `yaml:"en_to_indic_url"      env:"PROVISION_EN_TO_INDIC_URL"`
	IndicToEnURL     string        `yaml:"indic_to_en_url"      env:"PROVISION_INDIC_TO_EN_URL"`
	EnToIndicDictURL string        `yaml:"en_to_indic_dict_url" env:"PROVISION_EN_TO_INDIC_DICT_URL"`
	IndicToEnDictURL string        `yaml:"indic_to_en_dict_url" env:"PROVISION_INDIC_TO_EN_DICT_URL"`
	DownloadTimeout  time.Duration `yaml:"download_timeout"     env:"PROVISION_DOWNLOAD_TIMEOUT"  env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"false"`
	RPS     float64 `yaml:"rps"     env:"RATE_LIMIT_RPS"     env-default:"10"`
	Burst   int     `yaml:"burst"   env:"RATE_LIMIT_BURST"   env-default:"20"`
}
