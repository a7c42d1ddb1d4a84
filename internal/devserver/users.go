package devserver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           int
	Email        string
	FullName     *string
	PasswordHash []byte
	IsActive     bool
}

// UserService keeps accounts in memory and issues access tokens.
type UserService struct {
	mu     sync.RWMutex
	byMail map[string]*User
	nextID int

	secret   []byte
	tokenTTL time.Duration
	cost     int
}

func NewUserService(secretKey string, tokenTTL time.Duration) *UserService {
	return &UserService{
		byMail:   make(map[string]*User),
		nextID:   1,
		secret:   []byte(secretKey),
		tokenTTL: tokenTTL,
		cost:     bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, email string, password string, fullName *string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}

	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byMail[key]; ok {
		return nil, ErrEmailTaken
	}

	u := &User{
		ID:           s.nextID,
		Email:        strings.TrimSpace(email),
		FullName:     fullName,
		PasswordHash: hash,
		IsActive:     true,
	}
	s.nextID++
	s.byMail[key] = u

	return u, nil
}

// Login checks the password and returns a fresh access token.
func (s *UserService) Login(ctx context.Context, email string, password string) (string, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return GenerateToken(u.Email, s.secret, s.tokenTTL)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byMail[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*User, error) {
	email, err := SubjectFromToken(token, s.secret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.GetByEmail(ctx, email)
	if err != nil || !u.IsActive {
		return nil, ErrInvalidToken
	}
	return u, nil
}
