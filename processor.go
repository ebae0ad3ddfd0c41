package jsonwebtoken

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cybergodev/jsonwebtoken/internal/jws"
	"github.com/cybergodev/jsonwebtoken/internal/security"
	"github.com/cybergodev/jsonwebtoken/internal/signing"
)

// Processor issues and validates tokens for one algorithm and key pair.
// It is safe for concurrent use.
type Processor struct {
	secret       *security.SecureBytes
	signingKey   SigningKey
	verifyingKey VerifyingKey

	signingMethod   SigningMethod
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	issuer          string
	maxTokenSize    int

	rateLimiter *RateLimiter
	ownsLimiter bool
	metrics     *metrics
	log         *logrus.Entry

	mu     sync.RWMutex
	closed bool
}

// New creates an HMAC processor. The secret must hold at least 32 bytes, and at
// least as many bits as the digest of the configured method.
func New(secretKey string, config ...Config) (*Processor, error) {
	cfg := resolveConfig(config)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := cfg.validateSecret(secretKey); err != nil {
		return nil, err
	}

	secret := security.NewSecureBytes([]byte(secretKey))
	key := SymmetricKey(secret.Bytes())

	p := newProcessor(cfg, key, key)
	p.secret = secret
	return p, nil
}

// NewWithKeys creates a processor for any signing method except "none".
// verifyingKey may be nil when signingKey can also verify. A nil signingKey
// gives a validate-only processor.
func NewWithKeys(signingKey SigningKey, verifyingKey VerifyingKey, config ...Config) (*Processor, error) {
	cfg := resolveConfig(config)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if signing.IsAbsent(verifyingKey) {
		verifyingKey = nil
		if vk, ok := signingKey.(VerifyingKey); ok && !signing.IsAbsent(signingKey) {
			verifyingKey = vk
		}
	}
	if verifyingKey == nil {
		return nil, fmt.Errorf("%w: no verifying key", ErrInvalidKey)
	}
	if signing.IsAbsent(signingKey) {
		signingKey = nil
	}

	if err := checkKeys(cfg.SigningMethod, signingKey, verifyingKey); err != nil {
		return nil, err
	}
	return newProcessor(cfg, signingKey, verifyingKey), nil
}

// checkKeys signs a probe so that key kind, key size and a mismatched pair are
// reported at construction instead of on first use.
func checkKeys(method SigningMethod, signingKey SigningKey, verifyingKey VerifyingKey) error {
	probe := []byte("jsonwebtoken key check")
	alg := string(method)

	if signingKey == nil {
		parsed, err := method.algorithm()
		if err != nil {
			return err
		}
		_, err = signing.Verify(make([]byte, max(parsed.MACSize(), 1)), alg, verifyingKey, probe)
		return err
	}

	mac, err := signing.Sign(alg, signingKey, probe)
	if err != nil {
		return err
	}
	ok, err := signing.Verify(mac, alg, verifyingKey, probe)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: verifying key does not match signing key", ErrInvalidKey)
	}
	return nil
}

func resolveConfig(config []Config) Config {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.SigningMethod == "" {
		cfg.SigningMethod = SigningMethodHS256
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "jwt-service"
	}
	return cfg
}

func newProcessor(cfg Config, signingKey SigningKey, verifyingKey VerifyingKey) *Processor {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &Processor{
		signingKey:      signingKey,
		verifyingKey:    verifyingKey,
		signingMethod:   cfg.SigningMethod,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		issuer:          cfg.Issuer,
		maxTokenSize:    cfg.MaxTokenSize,
		metrics:         newMetrics(cfg.MetricsRegisterer),
		log: logger.WithFields(logrus.Fields{
			"component": "jsonwebtoken",
			"alg":       string(cfg.SigningMethod),
		}),
	}

	if cfg.EnableRateLimit {
		p.rateLimiter = cfg.RateLimiter
		if p.rateLimiter == nil {
			p.rateLimiter = NewRateLimiter(cfg.RateLimitRate, cfg.RateLimitWindow)
			p.ownsLimiter = true
		}
	}

	runtime.SetFinalizer(p, (*Processor).finalize)
	return p
}

// SigningMethod returns the only algorithm this processor signs with and accepts.
func (p *Processor) SigningMethod() SigningMethod {
	return p.signingMethod
}

// CreateToken creates an access token. iat, exp, iss and jti are filled in
// when zero.
func (p *Processor) CreateToken(claims Claims) (string, error) {
	return p.CreateTokenWithContext(context.Background(), claims)
}

// CreateTokenWithContext is CreateToken, refusing to start once ctx is done.
func (p *Processor) CreateTokenWithContext(ctx context.Context, claims Claims) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return "", err
	}
	return p.issue(&claims, p.accessTokenTTL)
}

// CreateRefreshToken creates a token that lives for RefreshTokenTTL.
func (p *Processor) CreateRefreshToken(claims Claims) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return "", err
	}
	return p.issue(&claims, p.refreshTokenTTL)
}

// RefreshToken validates a refresh token and issues a new access token with
// the same claims, fresh timestamps and a new jti.
func (p *Processor) RefreshToken(refreshToken string) (string, error) {
	claims, valid, err := p.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", ErrInvalidToken
	}

	claims.IssuedAt = NumericDate{}
	claims.ExpiresAt = NumericDate{}
	claims.NotBefore = NumericDate{}
	claims.ID = ""

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return "", err
	}
	return p.issue(claims, p.accessTokenTTL)
}

func (p *Processor) issue(claims *Claims, ttl time.Duration) (string, error) {
	if p.signingKey == nil {
		return "", fmt.Errorf("%w: processor has no signing key", ErrInvalidKey)
	}
	if err := validateClaims(claims); err != nil {
		return "", fmt.Errorf("claims validation failed: %w", err)
	}
	if p.rateLimiter != nil && !p.rateLimiter.Allow(rateLimitKey(claims)) {
		p.log.WithField("user_id", claims.UserID).Warn("token creation rate limited")
		return "", ErrRateLimitExceeded
	}

	start := time.Now()
	defer p.metrics.observe("sign", start)

	c := claims.clone()
	if c.IssuedAt.IsZero() {
		c.IssuedAt = NewNumericDate(start)
	}
	if c.ExpiresAt.IsZero() {
		c.ExpiresAt = NewNumericDate(start.Add(ttl))
	}
	if c.Issuer == "" {
		c.Issuer = p.issuer
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	token, err := createToken(payload, SignOptions{Alg: p.signingMethod, Key: p.signingKey})
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	p.metrics.issued.WithLabelValues(string(p.signingMethod)).Inc()
	return token, nil
}

func rateLimitKey(c *Claims) string {
	switch {
	case c.UserID != "":
		return "user:" + c.UserID
	case c.Username != "":
		return "username:" + c.Username
	default:
		return "anonymous"
	}
}

// ValidateToken verifies the signature, then exp, nbf and iss. A token whose
// signature does not verify yields (nil, false, nil); one that verifies but is
// expired, not yet valid or from another issuer yields its claims and false.
// Malformed tokens and tokens for another algorithm return ErrInvalidToken.
func (p *Processor) ValidateToken(tokenString string) (*Claims, bool, error) {
	return p.ValidateTokenWithContext(context.Background(), tokenString)
}

// ValidateTokenWithContext is ValidateToken, refusing to start once ctx is done.
func (p *Processor) ValidateTokenWithContext(ctx context.Context, tokenString string) (*Claims, bool, error) {
	if tokenString == "" {
		return nil, false, ErrEmptyToken
	}
	if p.maxTokenSize > 0 && len(tokenString) > p.maxTokenSize {
		p.log.WithField("size", len(tokenString)).Debug("token exceeds maximum size")
		return nil, false, ErrInvalidToken
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	defer p.metrics.observe("validate", start)
	alg := string(p.signingMethod)

	verified, ok, err := jws.Validate(tokenString, alg, p.verifyingKey)
	if err != nil {
		p.metrics.validated.WithLabelValues(alg, resultError).Inc()
		p.log.WithError(err).Debug("token rejected")
		security.SecureRandomDelay()
		return nil, false, ErrInvalidToken
	}
	if !ok {
		p.metrics.validated.WithLabelValues(alg, resultInvalid).Inc()
		p.log.Debug("token signature did not verify")
		return nil, false, nil
	}

	payload, err := jws.Payload(verified)
	if err != nil {
		p.metrics.validated.WithLabelValues(alg, resultError).Inc()
		return nil, false, ErrInvalidToken
	}
	claims := &Claims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		p.metrics.validated.WithLabelValues(alg, resultError).Inc()
		p.log.WithError(err).Debug("token payload is not a claim set")
		return nil, false, ErrInvalidToken
	}

	if reason := p.checkTimesAndIssuer(claims, start); reason != "" {
		p.metrics.validated.WithLabelValues(alg, resultInvalid).Inc()
		p.log.WithField("reason", reason).Debug("token claims rejected")
		return claims, false, nil
	}

	p.metrics.validated.WithLabelValues(alg, resultValid).Inc()
	return claims, true, nil
}

func (p *Processor) checkTimesAndIssuer(c *Claims, now time.Time) string {
	switch {
	case !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt.Time):
		return "expired"
	case !c.NotBefore.IsZero() && now.Before(c.NotBefore.Time):
		return "not yet valid"
	case c.Issuer != p.issuer:
		return "issuer mismatch"
	}
	return ""
}

// Close wipes the secret and releases the rate limiter. Later calls on the
// processor return ErrProcessorClosed.
func (p *Processor) Close() error {
	return p.CloseWithContext(context.Background())
}

// CloseWithContext is Close, refusing to start once ctx is done.
func (p *Processor) CloseWithContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProcessorClosed
	}

	if p.secret != nil {
		p.secret.Destroy()
		p.secret = nil
	}
	if p.rateLimiter != nil && p.ownsLimiter {
		p.rateLimiter.Close()
	}
	p.rateLimiter = nil
	p.signingKey = nil
	p.verifyingKey = nil

	p.closed = true
	runtime.SetFinalizer(p, nil)
	p.log.Debug("processor closed")
	return nil
}

func (p *Processor) finalize() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed && p.secret != nil {
		p.secret.Destroy()
	}
}

func (p *Processor) checkClosed() error {
	if p.closed {
		return ErrProcessorClosed
	}
	return nil
}

// IsClosed returns true if the processor has been closed
func (p *Processor) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
