package models

import (
	"crypto/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Session token settings
const (
	// SessionTokenIssuer identifies tokens minted by this process
	SessionTokenIssuer = "unisearch"

	// MinSecretLength is the minimum acceptable length for a configured secret
	MinSecretLength = 32
)

// SessionClaims carry the browser session id in a signed cookie so a client
// cannot pick another session's id.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// SessionTokens signs and validates session cookies.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionTokens returns a signer for secret. An empty secret is replaced
// by random bytes, which means sessions do not survive a restart.
func NewSessionTokens(secret string, ttl time.Duration) (*SessionTokens, error) {
	if secret == "" {
		buf := make([]byte, MinSecretLength)
		if _, err := rand.Read(buf); err != nil {
			return nil, serr.Wrap(err, "failed to generate session secret")
		}
		logger.Info("No session secret configured, using a per-process random secret")
		return &SessionTokens{secret: buf, ttl: ttl}, nil
	}

	if len(secret) < MinSecretLength {
		return nil, serr.New("session secret must be at least 32 characters")
	}
	return &SessionTokens{secret: []byte(secret), ttl: ttl}, nil
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.New().String()
}

// Issue signs a token for sessionID.
func (st *SessionTokens) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    SessionTokenIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	}
	if st.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(st.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(st.secret)
	if err != nil {
		return "", serr.Wrap(err, "failed to sign session token")
	}
	return signed, nil
}

// Validate returns the session id of a well-formed, unexpired token.
func (st *SessionTokens) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serr.New("unexpected signing method")
		}
		return st.secret, nil
	}, jwt.WithIssuer(SessionTokenIssuer))
	if err != nil {
		return "", serr.Wrap(err, "failed to parse session token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", serr.New("invalid session token claims")
	}
	return claims.SessionID, nil
}
