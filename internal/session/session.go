package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"barberpro/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidCredentials = errors.New("session: email is required")
	ErrInvalidToken       = errors.New("session: invalid token")
)

const ownerEmail = "olavo@gmail.com"

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager is the mock identity provider: any email logs in, the owner
// address gets the admin role. No password verification is performed.
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
	logger   *zerolog.Logger
}

func NewManager(secret string, tokenTTL time.Duration, logger *zerolog.Logger) *Manager {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Manager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login resolves the user for an email and issues a signed token.
func (m *Manager) Login(email, _ string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", ErrInvalidCredentials
	}

	user := m.resolveUser(email)

	now := time.Now()
	claims := Claims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	m.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return user, signed, nil
}

// Verify parses a token and reconstructs the session user.
func (m *Manager) Verify(tokenString string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &models.User{
		ID:   claims.Subject,
		Name: claims.Name,
		Role: claims.Role,
	}, nil
}

func (m *Manager) resolveUser(email string) *models.User {
	if email == ownerEmail {
		return &models.User{
			ID:     "owner-1",
			Name:   "Olavo Mestre",
			Email:  email,
			Role:   models.RoleAdmin,
			Points: models.DefaultStartingPoints,
			Tier:   models.TierForPoints(models.DefaultStartingPoints),
		}
	}

	local := email[:strings.Index(email, "@")]
	return &models.User{
		ID:     "user-" + local,
		Name:   local,
		Email:  email,
		Role:   models.RoleClient,
		Points: models.DefaultStartingPoints,
		Tier:   models.TierForPoints(models.DefaultStartingPoints),
	}
}
