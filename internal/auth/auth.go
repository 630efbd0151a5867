// Package auth checks the two credential kinds of the API: the editorial
// team's admin account (HTTP Basic, exchanged for a bearer JWT) and manager
// JWTs whose subject resolves through the roster.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
)

// adminSubject marks tokens issued to the editorial team account.
const adminSubject = "0"

// Service issues and verifies tokens.
type Service struct {
	secret        []byte
	roster        *Roster
	adminUser     string
	adminPassword string
}

func NewService(secret string, roster *Roster, adminUser, adminPassword string) *Service {
	return &Service{
		secret:        []byte(secret),
		roster:        roster,
		adminUser:     adminUser,
		adminPassword: adminPassword,
	}
}

// Roster exposes the manager roster.
func (s *Service) Roster() *Roster {
	return s.roster
}

type claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// CheckBasic validates an "Authorization: Basic ..." header against the
// admin account.
func (s *Service) CheckBasic(header string) error {
	payload, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		return fmt.Errorf("%w: Basic credentials required", apierr.ErrAuth)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: malformed credentials", apierr.ErrAuth)
	}
	user, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return fmt.Errorf("%w: malformed credentials", apierr.ErrAuth)
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !userOK || !passOK {
		return fmt.Errorf("%w: wrong credentials", apierr.ErrAuth)
	}
	return nil
}

// GenerateAdminToken issues the editorial team's bearer token, valid 30
// days.
func (s *Service) GenerateAdminToken() (string, error) {
	return s.generate(adminSubject, "lejdl@laroche.org", 30*24*time.Hour)
}

// GenerateManagerToken issues a manager token valid for the given number of
// days.
func (s *Service) GenerateManagerToken(managerID string, days int) (string, error) {
	name, ok := s.roster.Name(managerID)
	if !ok {
		return "", fmt.Errorf("%w: unknown manager", apierr.ErrAuth)
	}
	return s.generate(managerID, name, time.Duration(days)*24*time.Hour)
}

func (s *Service) generate(subject, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// VerifyAdmin checks an "Authorization: Bearer ..." header for a valid,
// non-revoked admin token.
func (s *Service) VerifyAdmin(header string) error {
	c, err := s.verifyBearer(header)
	if err != nil {
		return err
	}
	if c.Subject != adminSubject {
		return fmt.Errorf("%w: not an editorial token", apierr.ErrAuth)
	}
	return nil
}

// VerifyManager checks a bearer header for a manager token and returns the
// manager id.
func (s *Service) VerifyManager(header string) (string, error) {
	c, err := s.verifyBearer(header)
	if err != nil {
		return "", err
	}
	if c.Subject == adminSubject || !s.roster.Knows(c.Subject) {
		return "", fmt.Errorf("%w: not a manager token", apierr.ErrAuth)
	}
	return c.Subject, nil
}

// TokenExpiry returns the exp claim of a valid bearer token, for the
// revocation table.
func (s *Service) TokenExpiry(header string) (string, int64, error) {
	c, err := s.verifyBearer(header)
	if err != nil {
		return "", 0, err
	}
	raw, _ := strings.CutPrefix(header, "Bearer ")
	return raw, c.ExpiresAt.Unix(), nil
}

func (s *Service) verifyBearer(header string) (*claims, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, fmt.Errorf("%w: Bearer token required", apierr.ErrAuth)
	}

	c := &claims{}
	_, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", apierr.ErrAuth)
		}
		return nil, fmt.Errorf("%w: invalid token", apierr.ErrAuth)
	}

	revoked, err := db.IsTokenRevoked(raw)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token expired", apierr.ErrAuth)
	}

	return c, nil
}
