package jsonwebtoken

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cybergodev/jsonwebtoken/internal/security"
)

// Config represents processor configuration.
type Config struct {
	// AccessTokenTTL defines the lifetime of access tokens
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" json:"access_token_ttl"`

	// RefreshTokenTTL defines the lifetime of refresh tokens (must be greater than AccessTokenTTL)
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" json:"refresh_token_ttl"`

	// Issuer is written to iss and required on validation
	Issuer string `yaml:"issuer" json:"issuer"`

	// SigningMethod specifies the algorithm used to sign and to accept tokens
	SigningMethod SigningMethod `yaml:"signing_method" json:"signing_method"`

	// MaxTokenSize rejects longer tokens before any decoding
	MaxTokenSize int `yaml:"max_token_size" json:"max_token_size"`

	// EnableRateLimit enables rate limiting for token creation
	EnableRateLimit bool `yaml:"enable_rate_limit" json:"enable_rate_limit"`

	// RateLimitRate specifies the maximum number of tokens per window
	RateLimitRate int `yaml:"rate_limit_rate" json:"rate_limit_rate"`

	// RateLimitWindow defines the time window for rate limiting
	RateLimitWindow time.Duration `yaml:"rate_limit_window" json:"rate_limit_window"`

	// RateLimiter allows sharing one limiter between processors
	RateLimiter *RateLimiter `yaml:"-" json:"-"`

	// Logger defaults to logrus.StandardLogger()
	Logger *logrus.Logger `yaml:"-" json:"-"`

	// MetricsRegisterer receives the processor collectors when set
	MetricsRegisterer prometheus.Registerer `yaml:"-" json:"-"`
}

// DefaultConfig returns a secure default configuration for production use
func DefaultConfig() Config {
	return Config{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Issuer:          "jwt-service",
		SigningMethod:   SigningMethodHS256,
		MaxTokenSize:    8192,
		EnableRateLimit: false,
		RateLimitRate:   100,
		RateLimitWindow: time.Minute,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("%w: TTL must be positive", ErrInvalidConfig)
	}
	if c.AccessTokenTTL >= c.RefreshTokenTTL {
		return fmt.Errorf("%w: access token TTL must be less than refresh token TTL", ErrInvalidConfig)
	}
	if c.MaxTokenSize < 0 {
		return fmt.Errorf("%w: max token size must not be negative", ErrInvalidConfig)
	}
	if c.EnableRateLimit && c.RateLimiter == nil && (c.RateLimitRate <= 0 || c.RateLimitWindow <= 0) {
		return fmt.Errorf("%w: rate limit rate and window must be positive", ErrInvalidConfig)
	}

	if _, err := c.SigningMethod.algorithm(); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSigningMethod, c.SigningMethod)
	}
	return nil
}

// validateSecret applies the shared-secret policy for HMAC processors: at least
// 32 bytes, at least as many bits as the digest, and not obviously guessable.
func (c *Config) validateSecret(secret string) error {
	if !c.SigningMethod.IsHMAC() {
		return fmt.Errorf("%w: %s does not use a shared secret", ErrInvalidSigningMethod, c.SigningMethod)
	}
	alg, _ := c.SigningMethod.algorithm()

	minLen := max(32, int(alg.Strength)/8)
	if len(secret) < minLen {
		return fmt.Errorf("%w: minimum %d bytes required, got %d", ErrInvalidSecretKey, minLen, len(secret))
	}
	if security.IsWeakSecret([]byte(secret)) {
		return fmt.Errorf("%w: key must have sufficient entropy and complexity", ErrInvalidSecretKey)
	}
	return nil
}

// FileConfig is the YAML form of a processor: Config plus where its keys come
// from. Set either SecretKey or the key files.
type FileConfig struct {
	Config `yaml:",inline"`

	SecretKey      string `yaml:"secret_key"`
	PrivateKeyFile string `yaml:"private_key_file"`
	PublicKeyFile  string `yaml:"public_key_file"`
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	fc := &FileConfig{Config: DefaultConfig()}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return fc, nil
}

// NewProcessor builds the processor the file describes.
func (fc *FileConfig) NewProcessor() (*Processor, error) {
	if fc.SecretKey != "" {
		if fc.PrivateKeyFile != "" || fc.PublicKeyFile != "" {
			return nil, fmt.Errorf("%w: secret_key and key files are mutually exclusive", ErrInvalidConfig)
		}
		return New(fc.SecretKey, fc.Config)
	}

	var signKey SigningKey
	var verifyKey VerifyingKey
	if fc.PrivateKeyFile != "" {
		k, err := LoadPrivateKeyFile(fc.PrivateKeyFile)
		if err != nil {
			return nil, err
		}
		signKey = k
	}
	if fc.PublicKeyFile != "" {
		k, err := LoadPublicKeyFile(fc.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		verifyKey = k
	}
	return NewWithKeys(signKey, verifyKey, fc.Config)
}

// NewFromFile is LoadConfig followed by NewProcessor.
func NewFromFile(path string) (*Processor, error) {
	fc, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return fc.NewProcessor()
}
