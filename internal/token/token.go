package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bankadapter/internal/platform/middleware"
	dErrors "bankadapter/pkg/domain-errors"
)

// Defaults shared by the server and the tokengen CLI so tokens minted offline
// validate against a default-configured server.
const (
	DefaultIssuer   = "bank-adapter"
	DefaultAudience = "bank-adapter-callers"
	DefaultTTL      = 24 * time.Hour
)

// CallerClaims are the JWT claims carried by inbound caller tokens.
type CallerClaims struct {
	ClientID string `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and validates the caller tokens checked by the inbound auth
// middleware. The backoffice session token is unrelated and never passes
// through here.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
	tokenTTL   time.Duration
}

func NewService(signingKey, issuer, audience string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		tokenTTL:   tokenTTL,
	}
}

// Generate mints a signed caller token for the given subject.
func (s *Service) Generate(subject, clientID string) (string, error) {
	now := time.Now()
	claims := CallerClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign token")
	}
	return signed, nil
}

// ValidateToken parses and verifies a caller token, satisfying the
// middleware.TokenValidator interface.
func (s *Service) ValidateToken(tokenString string) (*middleware.CallerClaims, error) {
	var claims CallerClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}

	return &middleware.CallerClaims{
		Subject:  claims.Subject,
		ClientID: claims.ClientID,
	}, nil
}

var _ middleware.TokenValidator = (*Service)(nil)
