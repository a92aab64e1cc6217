package services

import (
	"context"
	"errors"
	"sync"

	"github.com/baharkarakas/contact-api/internal/apperr"
	"github.com/baharkarakas/contact-api/internal/auth"
	"github.com/baharkarakas/contact-api/internal/dto"
	"github.com/baharkarakas/contact-api/internal/metrics"
	"github.com/baharkarakas/contact-api/internal/models"
	repo "github.com/baharkarakas/contact-api/internal/repository"
)

const (
	msgUsernameTaken   = "Username already exists"
	msgBadCredentials  = "Username or password is wrong"
	msgUnauthenticated = "Unauthorized"
)

type UserService struct {
	r        repo.Users
	hasher   *auth.Hasher
	audit    *Auditor
	newToken func() string

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(r repo.Users, h *auth.Hasher, a *Auditor) *UserService {
	return &UserService{r: r, hasher: h, audit: a, newToken: auth.NewToken}
}

func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (dto.UserResponse, error) {
	if err := validated(req); err != nil {
		return dto.UserResponse{}, err
	}

	n, err := s.r.CountByUsername(ctx, req.Username)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if n != 0 {
		return dto.UserResponse{}, apperr.Conflict(msgUsernameTaken)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return dto.UserResponse{}, err
	}
	u, err := s.r.Create(ctx, models.User{Username: req.Username, Name: req.Name, PasswordHash: hash})
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repo.ErrConflict) {
			return dto.UserResponse{}, apperr.Conflict(msgUsernameTaken)
		}
		return dto.UserResponse{}, err
	}

	s.audit.record(models.AuditUser, u.Username, "create", u.Username, nil)
	return dto.ToUserResponse(u), nil
}

// Login answers unknown usernames and wrong passwords identically, including
// spending a bcrypt comparison on both paths.
func (s *UserService) Login(ctx context.Context, req dto.LoginUserRequest) (dto.UserResponse, error) {
	if err := validated(req); err != nil {
		return dto.UserResponse{}, err
	}

	u, err := s.r.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return dto.UserResponse{}, err
		}
		_, _ = s.hasher.Verify(req.Password, s.dummy())
		metrics.LoginFailures.Inc()
		return dto.UserResponse{}, apperr.Unauthenticated(msgBadCredentials)
	}

	ok, err := s.hasher.Verify(req.Password, u.PasswordHash)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if !ok {
		metrics.LoginFailures.Inc()
		return dto.UserResponse{}, apperr.Unauthenticated(msgBadCredentials)
	}

	token := s.newToken()
	u, err = s.r.SetToken(ctx, u.Username, &token)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.audit.record(models.AuditUser, u.Username, "login", u.Username, nil)
	resp := dto.ToUserResponse(u)
	resp.Token = token
	return resp, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}

// Authenticate resolves a session token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, apperr.Unauthenticated(msgUnauthenticated)
	}
	return mustExist(ctx, apperr.Unauthenticated(msgUnauthenticated), func(ctx context.Context) (models.User, error) {
		return s.r.GetByToken(ctx, token)
	})
}

func (s *UserService) Get(_ context.Context, u models.User) (dto.UserResponse, error) {
	return dto.ToUserResponse(u), nil
}

func (s *UserService) Update(ctx context.Context, u models.User, req dto.UpdateUserRequest) (dto.UserResponse, error) {
	if err := validated(req); err != nil {
		return dto.UserResponse{}, err
	}

	var hash *string
	if req.Password != nil {
		h, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return dto.UserResponse{}, err
		}
		hash = &h
	}

	updated, err := mustExist(ctx, apperr.Unauthenticated(msgUnauthenticated), func(ctx context.Context) (models.User, error) {
		return s.r.Update(ctx, u.Username, req.Name, hash)
	})
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.audit.record(models.AuditUser, u.Username, "update", u.Username, map[string]any{
		"name":     req.Name != nil,
		"password": req.Password != nil,
	})
	return dto.ToUserResponse(updated), nil
}

func (s *UserService) Logout(ctx context.Context, u models.User) error {
	_, err := mustExist(ctx, apperr.Unauthenticated(msgUnauthenticated), func(ctx context.Context) (models.User, error) {
		return s.r.SetToken(ctx, u.Username, nil)
	})
	if err != nil {
		return err
	}
	s.audit.record(models.AuditUser, u.Username, "logout", u.Username, nil)
	return nil
}
