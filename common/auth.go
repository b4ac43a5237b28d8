package common

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const labTokenIssuer = "pd-lab"

// ErrLabLocked is returned when no lab key is configured
var ErrLabLocked = errors.New("lab access is not configured")

// LabGate guards the directory lab behind a shared key.
// The key arrives as the "k" query parameter or is exchanged once for a
// short-lived bearer token.
type LabGate struct {
	key      string
	keyHash  []byte
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewLabGate builds a gate. keyHash is an optional bcrypt hash used instead
// of the plain key. secret signs session tokens and defaults to the key.
func NewLabGate(key, keyHash, secret string, tokenTTL time.Duration) *LabGate {
	if secret == "" {
		secret = key
	}
	if secret == "" {
		secret = keyHash
	}
	return &LabGate{
		key:      key,
		keyHash:  []byte(keyHash),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Enabled reports whether any key is configured
func (g *LabGate) Enabled() bool {
	return g.key != "" || len(g.keyHash) > 0
}

// CheckKey compares a provided key with the configured one
func (g *LabGate) CheckKey(provided string) bool {
	if provided == "" || !g.Enabled() {
		return false
	}
	if len(g.keyHash) > 0 {
		return bcrypt.CompareHashAndPassword(g.keyHash, []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(g.key)) == 1
}

// IssueToken signs a session token for a valid key
func (g *LabGate) IssueToken(provided string) (string, time.Time, error) {
	if !g.Enabled() {
		return "", time.Time{}, ErrLabLocked
	}
	if !g.CheckKey(provided) {
		return "", time.Time{}, errors.New("invalid key")
	}

	now := g.now()
	expiresAt := now.Add(g.tokenTTL)
	claims := jwt.RegisteredClaims{
		Issuer:    labTokenIssuer,
		Subject:   "lab",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyToken checks signature, issuer and expiry
func (g *LabGate) VerifyToken(raw string) error {
	if !g.Enabled() {
		return ErrLabLocked
	}
	_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(labTokenIssuer),
		jwt.WithTimeFunc(g.now),
	)
	return err
}

// Middleware rejects requests that carry neither a valid key nor a valid
// bearer token
func (g *LabGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.CheckKey(c.Query("k")) {
			c.Next()
			return
		}

		if bearer, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
			if g.VerifyToken(strings.TrimSpace(bearer)) == nil {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

// SessionRequest is the body of a lab session request
type SessionRequest struct {
	Key string `json:"key" binding:"required"`
}

// CreateSession exchanges the lab key for a bearer token
func (g *LabGate) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, expiresAt, err := g.IssueToken(req.Key)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}
