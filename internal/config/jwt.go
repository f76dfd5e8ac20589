package config

import (
	"crypto/rsa"
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenValidity is the lifetime of an issued token. There is no revocation
// list: a token stays valid until this window elapses.
const TokenValidity = 18 * time.Hour

type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the identity the token was issued for.
func (c *Claims) UserID() string {
	return c.Subject
}

type Token interface {
	GenerateJWT(userID string) (string, error)
	ValidateJWT(tokenString string) (*Claims, error)
}

// JWT signs and verifies RS256 tokens. The keypair is loaded once at startup
// and never regenerated; callers only ever see the opaque token strings.
type JWT struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	validity   time.Duration
}

func NewJWT() *JWT {
	privFile := os.Getenv("JWT_PRIVATE_KEY_FILE")
	pubFile := os.Getenv("JWT_PUBLIC_KEY_FILE")
	if privFile == "" || pubFile == "" {
		log.Fatal("JWT_PRIVATE_KEY_FILE or JWT_PUBLIC_KEY_FILE not defined")
	}

	j, err := NewJWTFromFiles(privFile, pubFile, TokenValidity)
	if err != nil {
		log.Fatal("Failed to load JWT keypair: ", err)
	}

	return j
}

func NewJWTFromFiles(privFile, pubFile string, validity time.Duration) (*JWT, error) {
	privPem, err := os.ReadFile(privFile)
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPem)
	if err != nil {
		return nil, err
	}

	pubPem, err := os.ReadFile(pubFile)
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPem)
	if err != nil {
		return nil, err
	}

	return &JWT{privateKey: privateKey, publicKey: publicKey, validity: validity}, nil
}

func NewJWTFromKeys(privateKey *rsa.PrivateKey, validity time.Duration) *JWT {
	return &JWT{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		validity:   validity,
	}
}

func (j *JWT) GenerateJWT(userID string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}

// ValidateJWT either returns the decoded claims or rejects the token. A
// malformed, foreign-signed, or expired token never yields claims.
func (j *JWT) ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, jwt.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, jwt.ErrTokenMalformed
		default:
			return nil, jwt.ErrSignatureInvalid
		}
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}
