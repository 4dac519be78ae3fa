package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type CreateUserInput struct {
	Login    string
	Email    string
	Password string
}

type ListUsersInput struct {
	SearchLoginTerm string
	SearchEmailTerm string
	SortBy          string
	SortDirection   string
	Page            int
	PageSize        int
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validation.ValidateLogin(in.Login); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.userRepo.GetByLogin(ctx, in.Login); err == nil {
		return nil, models.NewValidationError("login is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByLoginOrEmail(ctx, in.Email); err == nil {
		return nil, models.NewValidationError("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Login:        in.Login,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials against the stored bcrypt hash. The
// same error is returned for unknown accounts and wrong passwords.
func (s *UserService) Authenticate(ctx context.Context, loginOrEmail, password string) (*models.User, error) {
	user, err := s.userRepo.GetByLoginOrEmail(ctx, loginOrEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("User", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) (models.Page[models.User], error) {
	page, size, limit, offset := normalizePaging(in.Page, in.PageSize)
	users, total, err := s.userRepo.List(ctx, in.SearchLoginTerm, in.SearchEmailTerm, in.SortBy, in.SortDirection, limit, offset)
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return models.NewPage(users, total, page, size), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", id)
	}
	return s.userRepo.Delete(ctx, id)
}
