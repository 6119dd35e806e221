package headers

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures SignedJWT. Only HMAC signing is supported.
type JWTConfig struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret" validate:"required"`
	// Method is HS256 (default), HS384 or HS512.
	Method string `yaml:"method" mapstructure:"method"`
	// Issuer is the "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
	// Subject is the "sub" claim (optional).
	Subject string `yaml:"subject" mapstructure:"subject"`
	// Audience is the "aud" claim (optional).
	Audience []string `yaml:"audience" mapstructure:"audience"`
	// TTL is the token lifetime. Defaults to 5m.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`

	now func() time.Time
}

func (c *JWTConfig) applyDefaults() {
	if c.Method == "" {
		c.Method = "HS256"
	}
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
	if c.now == nil {
		c.now = time.Now
	}
}

func (c *JWTConfig) signingMethod() (gojwt.SigningMethod, error) {
	switch c.Method {
	case "HS256":
		return gojwt.SigningMethodHS256, nil
	case "HS384":
		return gojwt.SigningMethodHS384, nil
	case "HS512":
		return gojwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("headers: unsupported jwt signing method %q", c.Method)
	}
}

// JWTSource mints a fresh signed token on every call.
type JWTSource struct {
	cfg    JWTConfig
	method gojwt.SigningMethod
}

// NewJWTSource validates cfg and returns a TokenSource signing with it.
func NewJWTSource(cfg JWTConfig) (*JWTSource, error) {
	cfg.applyDefaults()
	if cfg.Secret == "" {
		return nil, fmt.Errorf("headers: jwt secret is required")
	}
	method, err := cfg.signingMethod()
	if err != nil {
		return nil, err
	}
	return &JWTSource{cfg: cfg, method: method}, nil
}

// Token implements TokenSource.
func (s *JWTSource) Token() (string, error) {
	now := s.cfg.now()
	claims := gojwt.RegisteredClaims{
		Issuer:    s.cfg.Issuer,
		Subject:   s.cfg.Subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
	}
	if len(s.cfg.Audience) > 0 {
		claims.Audience = gojwt.ClaimStrings(s.cfg.Audience)
	}
	signed, err := gojwt.NewWithClaims(s.method, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("headers: sign jwt: %w", err)
	}
	return signed, nil
}

// SignedJWT returns a BearerToken mapper backed by a JWTSource.
func SignedJWT(cfg JWTConfig) (Mapper, error) {
	src, err := NewJWTSource(cfg)
	if err != nil {
		return nil, err
	}
	return BearerToken(src), nil
}
