// Package auth implements the authorization guard: registration, login
// against stored credentials, opaque session tokens with a fixed TTL,
// and token resolution for every protected operation.
package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/basit/filestash-backend/apperrors"
	"github.com/basit/filestash-backend/models"
	"github.com/basit/filestash-backend/storage"
)

// Session keys are namespaced in the store; tokens live for 24 hours
// and are never renewed.
const (
	tokenKeyPrefix = "auth_"
	tokenTTL       = 24 * time.Hour
)

type Guard struct {
	sessions storage.SessionStore
	meta     *storage.Metadata
}

func NewGuard(sessions storage.SessionStore, meta *storage.Metadata) *Guard {
	return &Guard{sessions: sessions, meta: meta}
}

// Register creates a user with a bcrypt-hashed password. Duplicate
// emails return ErrConflict.
func (g *Guard) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, apperrors.Invalid("Missing email")
	}
	if password == "" {
		return nil, apperrors.Invalid("Missing password")
	}

	_, err := g.meta.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.ErrConflict
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("hash password", err)
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := g.meta.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login decodes a Basic authorization header ("Basic base64(email:password)"),
// verifies the credentials and mints a new opaque token with a 24h TTL.
// Every failure mode is ErrUnauthorized; nothing leaks which part was
// wrong.
func (g *Guard) Login(ctx context.Context, authHeader string) (string, error) {
	email, password, ok := decodeBasic(authHeader)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}

	user, err := g.meta.FindUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", apperrors.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", apperrors.ErrUnauthorized
	}

	token := uuid.New().String()
	if err := g.sessions.Set(ctx, tokenKeyPrefix+token, user.ID.String(), tokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Logout deletes the session behind token. A token that no longer
// resolves (including a second logout) is ErrUnauthorized.
func (g *Guard) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrUnauthorized
	}
	key := tokenKeyPrefix + token
	if _, err := g.sessions.Get(ctx, key); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return err
	}
	return g.sessions.Del(ctx, key)
}

// Authenticate resolves a token to a user id. A missing or unknown
// token is ErrUnauthorized; a session store outage stays
// ErrUnavailable — "cannot check" must not read as "not logged in".
func (g *Guard) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	val, err := g.sessions.Get(ctx, tokenKeyPrefix+token)
	if errors.Is(err, apperrors.ErrNotFound) {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return userID, nil
}

// decodeBasic splits "Basic base64(email:password)" into its parts.
func decodeBasic(header string) (email, password string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Basic" {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}
	email, password, found := strings.Cut(string(raw), ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}
