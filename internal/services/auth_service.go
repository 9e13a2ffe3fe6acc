package services

import (
	"errors"
	"time"

	"multiciber/internal/domain"
	"multiciber/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrBadToken   = errors.New("invalid or expired token")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Users    *repos.UserRepo
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TokenTTL: 7 * 24 * time.Hour}
}

type sessionClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(name, email, password string) (*domain.User, string, error) {
	taken, err := s.Users.EmailTaken(email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{ID: uuid.NewString(), Email: email, Name: name, Hash: string(h)}
	if err := s.Users.Create(u); err != nil {
		return nil, "", err
	}
	tok, err := s.IssueToken(u)
	return u, tok, err
}

// Login collapses unknown email and wrong password into ErrBadCreds; genuine
// storage failures pass through so callers can report an internal error.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if repos.IsNotFound(err) {
			return nil, "", ErrBadCreds
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	tok, err := s.IssueToken(u)
	return u, tok, err
}

func (s *AuthService) IssueToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name: u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// VerifyToken resolves a signed session token to its user. Every failure mode
// collapses into ErrBadToken; callers must not leak the cause.
func (s *AuthService) VerifyToken(tokenString string) (*domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrBadToken
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrBadToken
	}
	u, err := s.Users.ByID(claims.Subject)
	if err != nil {
		return nil, ErrBadToken
	}
	return u, nil
}
