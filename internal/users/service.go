package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"agency-backend/internal/auth"
	"agency-backend/internal/middleware"
	"agency-backend/internal/models"
	"agency-backend/internal/query"
	"agency-backend/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("account is deactivated")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSelfDelete         = errors.New("cannot delete own account")
)

type Service struct {
	repo     Repository
	tokens   *auth.Manager
	val      *validation.Validator
	location *time.Location
}

func NewService(repo Repository, tokens *auth.Manager, val *validation.Validator, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		val:      val,
		location: location,
	}
}

// Login checks the credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.val.Check(req); err != nil {
		return LoginResult{}, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return LoginResult{}, ErrInactive
	}

	token, err := s.tokens.NewToken(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, err
	}

	now := time.Now().In(s.location)
	if err := s.repo.SetLastLogin(ctx, user.ID, now); err == nil {
		user.LastLogin = &now
	}
	return LoginResult{Token: token, User: user}, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	user, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// LookupCaller resolves a token subject for the auth middleware.
func (s *Service) LookupCaller(ctx context.Context, id string) (middleware.Caller, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return middleware.Caller{}, err
	}
	if !user.IsActive {
		return middleware.Caller{}, ErrInactive
	}
	return middleware.Caller{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (s *Service) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	if err := s.val.Check(req); err != nil {
		return err
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return ErrWrongPassword
	}
	newPassword := req.NewPassword
	_, err = s.Update(ctx, id, UpdateRequest{Password: &newPassword})
	return err
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]User, query.Pagination, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.NewPagination(filter.Page, total), nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (User, error) {
	if err := s.val.Check(password{Password: req.Password}); err != nil {
		return User{}, err
	}

	now := time.Now().In(s.location)
	user := User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Email:     normalizeEmail(req.Email),
		Role:      strings.TrimSpace(req.Role),
		Avatar:    strings.TrimSpace(req.Avatar),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Role == "" {
		user.Role = models.UserRoleEditor
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.val.Check(user); err != nil {
		return User{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return User{}, err
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return user, nil
}

// Update merges the request onto the stored user. The password is hashed
// again only when the request carries one.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Role != nil {
		user.Role = strings.TrimSpace(*req.Role)
	}
	if req.Avatar != nil {
		user.Avatar = strings.TrimSpace(*req.Avatar)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.val.Check(user); err != nil {
		return User{}, err
	}

	if req.Password != nil {
		if err := s.val.Check(password{Password: *req.Password}); err != nil {
			return User{}, err
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().In(s.location)

	if err := s.repo.Replace(ctx, user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return user, nil
}

// Delete removes a user; callerID may not remove itself.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	id = strings.TrimSpace(id)
	if id == callerID {
		return ErrSelfDelete
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
