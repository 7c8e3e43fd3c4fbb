package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/models"
	"storefront/repositories"
	"storefront/utils"
)

// AuthService is the mock account layer: accounts live in local storage,
// sessions are signed JWTs, and its only real job is stamping user ids on
// orders and prefilling checkout from the default saved address.
type AuthService struct {
	storage repositories.Storage
	nowFunc func() time.Time

	mu     sync.Mutex
	cached map[string]models.User
}

func NewAuthService(storage repositories.Storage) *AuthService {
	return &AuthService{storage: storage, nowFunc: time.Now}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := users[req.Email]; exists {
		return nil, fmt.Errorf("email already registered: %w", ErrInvalidArgument)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc()
	user := models.User{
		ID:        "user_" + uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		Password:  hashed,
		Addresses: []models.SavedAddress{},
		PaymentMethods: []models.PaymentMethod{{
			ID:        "pm_1",
			Type:      "btc",
			Label:     "Bitcoin (BTC)",
			IsDefault: true,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	users[req.Email] = user

	if err := s.persist(ctx, users); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user.Sanitized()}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := users[req.Email]
	if !ok {
		return nil, fmt.Errorf("invalid email or password: %w", ErrNotFound)
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, fmt.Errorf("invalid email or password: %w", ErrNotFound)
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user.Sanitized()}, nil
}

// CurrentUser resolves a user id from JWT claims to the stored account.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	users, err := s.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.ID == userID {
			return user.Sanitized(), nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", userID, ErrNotFound)
}

func (s *AuthService) AddAddress(ctx context.Context, userID string, req models.AddressRequest) (models.SavedAddress, error) {
	var added models.SavedAddress
	err := s.updateUser(ctx, userID, func(user *models.User) error {
		added = models.SavedAddress{
			ID: "addr_" + uuid.NewString(),
			Address: models.Address{
				Name:    req.Name,
				Street:  req.Street,
				City:    req.City,
				State:   req.State,
				Zip:     req.Zip,
				Country: country(req.Country),
				Phone:   req.Phone,
			},
			IsDefault: req.Default || len(user.Addresses) == 0,
		}
		if added.IsDefault {
			for i := range user.Addresses {
				user.Addresses[i].IsDefault = false
			}
		}
		user.Addresses = append(user.Addresses, added)
		return nil
	})
	return added, err
}

func (s *AuthService) UpdateAddress(ctx context.Context, userID, addressID string, req models.AddressRequest) (models.SavedAddress, error) {
	var updated models.SavedAddress
	err := s.updateUser(ctx, userID, func(user *models.User) error {
		for i := range user.Addresses {
			if user.Addresses[i].ID != addressID {
				continue
			}
			user.Addresses[i].Address = models.Address{
				Name:    req.Name,
				Street:  req.Street,
				City:    req.City,
				State:   req.State,
				Zip:     req.Zip,
				Country: country(req.Country),
				Phone:   req.Phone,
			}
			if req.Default {
				for j := range user.Addresses {
					user.Addresses[j].IsDefault = j == i
				}
			}
			updated = user.Addresses[i]
			return nil
		}
		return fmt.Errorf("address %q: %w", addressID, ErrNotFound)
	})
	return updated, err
}

func (s *AuthService) RemoveAddress(ctx context.Context, userID, addressID string) error {
	return s.updateUser(ctx, userID, func(user *models.User) error {
		for i := range user.Addresses {
			if user.Addresses[i].ID == addressID {
				user.Addresses = append(user.Addresses[:i], user.Addresses[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("address %q: %w", addressID, ErrNotFound)
	})
}

func (s *AuthService) updateUser(ctx context.Context, userID string, apply func(*models.User) error) error {
	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	for email, user := range users {
		if user.ID != userID {
			continue
		}
		if err := apply(&user); err != nil {
			return err
		}
		user.UpdatedAt = s.nowFunc()
		users[email] = user
		return s.persist(ctx, users)
	}
	return fmt.Errorf("user %q: %w", userID, ErrNotFound)
}

func (s *AuthService) load(ctx context.Context) (map[string]models.User, error) {
	raw, err := s.storage.Get(ctx, repositories.KeyUsers)
	if err == repositories.ErrKeyNotFound {
		return map[string]models.User{}, nil
	}
	if err != nil {
		s.mu.Lock()
		cached := s.cached
		s.mu.Unlock()
		if cached != nil {
			out := make(map[string]models.User, len(cached))
			for k, v := range cached {
				out[k] = v
			}
			return out, nil
		}
		return nil, fmt.Errorf("load users: %w: %v", ErrStorageUnavailable, err)
	}

	users := map[string]models.User{}
	if err := json.Unmarshal(raw, &users); err != nil {
		log.Printf("Failed to parse stored users, starting empty: %v", err)
		return map[string]models.User{}, nil
	}
	return users, nil
}

func (s *AuthService) persist(ctx context.Context, users map[string]models.User) error {
	s.mu.Lock()
	s.cached = users
	s.mu.Unlock()

	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.storage.Set(ctx, repositories.KeyUsers, payload); err != nil {
		return fmt.Errorf("persist users: %w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func country(c string) string {
	if c == "" {
		return "United States"
	}
	return c
}
