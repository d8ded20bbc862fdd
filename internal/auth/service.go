package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrUserNotFound       = errors.New("user not found")
)

const minPasswordLength = 6

// Identity is an authenticated user. SiteSlug is empty for site owners.
type Identity struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	SiteSlug    string `json:"siteSlug,omitempty"`
}

type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
	SiteSlug    string
}

// Service keeps identity records in the users collection. An email is unique
// within one scope: the owners, or the shoppers of one storefront.
type Service struct {
	store    repository.DocumentStore
	secret   []byte
	tokenTTL time.Duration
	log      *logrus.Entry
}

// NewService creates an identity service signing tokens with secret.
func NewService(store repository.DocumentStore, secret string, tokenTTL time.Duration, log *logrus.Entry) *Service {
	if log == nil {
		log = logger.WithComponent("auth")
	}
	if tokenTTL <= 0 {
		tokenTTL = 72 * time.Hour
	}
	return &Service{store: store, secret: []byte(secret), tokenTTL: tokenTTL, log: log}
}

// SignUp registers a new user within the scope of in.SiteSlug.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Identity, error) {
	email := normalizeEmail(in.Email)
	if !strings.Contains(email, "@") {
		return Identity{}, ErrInvalidEmail
	}
	if len(in.Password) < minPasswordLength {
		return Identity{}, ErrWeakPassword
	}

	existing, err := s.usersByEmail(ctx, email)
	if err != nil {
		return Identity{}, err
	}
	for _, u := range existing {
		if u.SiteSlug == in.SiteSlug {
			return Identity{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		SiteSlug:     in.SiteSlug,
		CreatedAt:    time.Now().UTC(),
	}
	data, err := repository.Encode(user)
	if err != nil {
		return Identity{}, err
	}
	id, err := s.store.AddDocument(ctx, repository.Users, data)
	if err != nil {
		return Identity{}, fmt.Errorf("create user: %w", err)
	}
	user.ID = id

	s.log.WithFields(logrus.Fields{"user_id": id, "site_slug": in.SiteSlug}).Info("user registered")
	return identityOf(user), nil
}

// Authenticate checks credentials. Accounts registered with scope are tried
// before owner accounts.
func (s *Service) Authenticate(ctx context.Context, email, secret, scope string) (Identity, error) {
	users, err := s.usersByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Identity{}, err
	}

	ordered := make([]models.User, 0, len(users))
	for _, u := range users {
		if scope != "" && u.SiteSlug == scope {
			ordered = append(ordered, u)
		}
	}
	for _, u := range users {
		if u.SiteSlug == "" {
			ordered = append(ordered, u)
		}
	}

	for _, u := range ordered {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(secret)) == nil {
			return identityOf(u), nil
		}
	}
	return Identity{}, ErrInvalidCredentials
}

// Lookup loads the identity stored for userID.
func (s *Service) Lookup(ctx context.Context, userID string) (Identity, error) {
	doc, err := s.store.GetDocument(ctx, repository.Users, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Identity{}, ErrUserNotFound
	}
	if err != nil {
		return Identity{}, fmt.Errorf("lookup user: %w", err)
	}
	var u models.User
	if err := repository.Decode(doc.Data, &u); err != nil {
		return Identity{}, err
	}
	u.ID = doc.Key
	return identityOf(u), nil
}

func (s *Service) usersByEmail(ctx context.Context, email string) ([]models.User, error) {
	docs, err := s.store.QueryByField(ctx, repository.Users, "email", email)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		var u models.User
		if err := repository.Decode(doc.Data, &u); err != nil {
			s.log.WithError(err).WithField("user_id", doc.Key).Warn("skipping unreadable user record")
			continue
		}
		u.ID = doc.Key
		users = append(users, u)
	}
	return users, nil
}

func identityOf(u models.User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, DisplayName: u.DisplayName, SiteSlug: u.SiteSlug}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
