// Package auth implements the credential/session core: argon2id password
// hashing and Ed25519-signed JWTs carrying the user identity.
package auth

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

// Claims is the JWT claim set: registered claims plus the identity fields.
// The password hash never appears here.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenCodec signs identities with an Ed25519 private key and verifies
// tokens with the matching public key, so a verifying process can run with
// the public key only. Issuer, audience and lifetime are fixed at
// construction and enforced on every Verify.
type TokenCodec struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	issuer     string
	audience   string
	validity   time.Duration
}

func NewTokenCodec(privatePEM, publicPEM []byte, issuer, audience string, validity time.Duration) (*TokenCodec, error) {

	priv, err := jwt.ParseEdPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	edPriv, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not Ed25519")
	}

	pub, err := jwt.ParseEdPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	edPub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not Ed25519")
	}

	return &TokenCodec{
		privateKey: edPriv,
		publicKey:  edPub,
		issuer:     issuer,
		audience:   audience,
		validity:   validity,
	}, nil
}

// Sign embeds the identity into a signed token that expires after the
// configured validity duration.
func (c *TokenCodec) Sign(user *models.User) (string, error) {

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})

	tokenString, err := token.SignedString(c.privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorSigning, err)
	}

	return tokenString, nil
}

// Verify checks the signature, issuer, audience and expiry, and returns the
// embedded identity. Every failure is reported as common.ErrInvalidToken;
// callers must treat the token holder as unauthenticated without learning
// which check failed.
func (c *TokenCodec) Verify(tokenString string) (*models.User, error) {

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.publicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &models.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
