package jsonwebtoken

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"default", func(c *Config) {}, nil},
		{"zero access TTL", func(c *Config) { c.AccessTokenTTL = 0 }, ErrInvalidConfig},
		{"negative refresh TTL", func(c *Config) { c.RefreshTokenTTL = -time.Hour }, ErrInvalidConfig},
		{"access not shorter than refresh", func(c *Config) { c.AccessTokenTTL = c.RefreshTokenTTL }, ErrInvalidConfig},
		{"negative max size", func(c *Config) { c.MaxTokenSize = -1 }, ErrInvalidConfig},
		{"unlimited size", func(c *Config) { c.MaxTokenSize = 0 }, nil},
		{"rate limit without rate", func(c *Config) { c.EnableRateLimit = true; c.RateLimitRate = 0 }, ErrInvalidConfig},
		{"rate limit without window", func(c *Config) { c.EnableRateLimit = true; c.RateLimitWindow = 0 }, ErrInvalidConfig},
		{"shared limiter", func(c *Config) {
			c.EnableRateLimit = true
			c.RateLimitRate = 0
			c.RateLimiter = NewRateLimiter(1, time.Second)
		}, nil},
		{"RS512", func(c *Config) { c.SigningMethod = SigningMethodRS512 }, nil},
		{"none", func(c *Config) { c.SigningMethod = SigningMethodNone }, ErrInvalidSigningMethod},
		{"lower case", func(c *Config) { c.SigningMethod = "hs256" }, ErrInvalidSigningMethod},
		{"unknown", func(c *Config) { c.SigningMethod = "PS256" }, ErrInvalidSigningMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	var nilConfig *Config
	if err := nilConfig.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil config, got %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jwt.yaml", `
access_token_ttl: 5m
refresh_token_ttl: 24h
issuer: auth.example.com
signing_method: HS384
enable_rate_limit: true
rate_limit_rate: 10
secret_key: "`+testSecretKey+`"
`)

	fc, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if fc.AccessTokenTTL != 5*time.Minute {
		t.Errorf("Expected 5m, got %v", fc.AccessTokenTTL)
	}
	if fc.RefreshTokenTTL != 24*time.Hour {
		t.Errorf("Expected 24h, got %v", fc.RefreshTokenTTL)
	}
	if fc.Issuer != "auth.example.com" {
		t.Errorf("Expected issuer auth.example.com, got %q", fc.Issuer)
	}
	if fc.SigningMethod != SigningMethodHS384 {
		t.Errorf("Expected HS384, got %s", fc.SigningMethod)
	}
	if !fc.EnableRateLimit || fc.RateLimitRate != 10 {
		t.Errorf("Expected rate limit of 10, got %v/%d", fc.EnableRateLimit, fc.RateLimitRate)
	}
	// Keys absent from the file keep their defaults.
	if fc.MaxTokenSize != 8192 || fc.RateLimitWindow != time.Minute {
		t.Errorf("Expected defaults to survive, got size %d window %v", fc.MaxTokenSize, fc.RateLimitWindow)
	}
	if fc.SecretKey != testSecretKey {
		t.Errorf("Expected secret to be loaded")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"bad yaml", "issuer: [unterminated", ErrInvalidConfig},
		{"bad duration", "access_token_ttl: soon", ErrInvalidConfig},
		{"inverted TTLs", "access_token_ttl: 48h\nrefresh_token_ttl: 1h", ErrInvalidConfig},
		{"none", "signing_method: none", ErrInvalidSigningMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "config.yaml", tt.content)
			if _, err := LoadConfig(path); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestNewFromFileWithSecret(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jwt.yaml", "issuer: files\nsecret_key: \""+testSecretKey+"\"\n")

	p, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile failed: %v", err)
	}
	defer p.Close()

	token, err := p.CreateToken(Claims{UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	claims, valid, err := p.ValidateToken(token)
	if err != nil || !valid {
		t.Fatalf("Expected valid token, got (%v, %v)", valid, err)
	}
	if claims.Issuer != "files" {
		t.Errorf("Expected issuer files, got %q", claims.Issuer)
	}
}

func TestNewFromFileWithKeyFiles(t *testing.T) {
	loadKeys(t)
	dir := t.TempDir()

	der, err := x509.MarshalPKCS8PrivateKey(ecKeys[SigningMethodES384])
	if err != nil {
		t.Fatal(err)
	}
	priv := writeFile(t, dir, "key.pem", string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})))

	der, err = x509.MarshalPKIXPublicKey(&ecKeys[SigningMethodES384].PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	pub := writeFile(t, dir, "key.pub", string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})))

	signer := writeFile(t, dir, "signer.yaml", "signing_method: ES384\nprivate_key_file: "+priv+"\n")
	verifier := writeFile(t, dir, "verifier.yaml", "signing_method: ES384\npublic_key_file: "+pub+"\n")

	sp, err := NewFromFile(signer)
	if err != nil {
		t.Fatalf("NewFromFile (signer) failed: %v", err)
	}
	defer sp.Close()
	vp, err := NewFromFile(verifier)
	if err != nil {
		t.Fatalf("NewFromFile (verifier) failed: %v", err)
	}
	defer vp.Close()

	token, err := sp.CreateToken(Claims{UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, valid, err := vp.ValidateToken(token); err != nil || !valid {
		t.Errorf("Expected verifier to accept token, got (%v, %v)", valid, err)
	}

	both := writeFile(t, dir, "both.yaml", "signing_method: ES384\nsecret_key: \""+testSecretKey+"\"\nprivate_key_file: "+priv+"\n")
	if _, err := NewFromFile(both); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	wrongAlg := writeFile(t, dir, "wrong.yaml", "signing_method: RS256\nprivate_key_file: "+priv+"\n")
	if _, err := NewFromFile(wrongAlg); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
}
