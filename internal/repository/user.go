package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByLoginOrEmail(ctx context.Context, loginOrEmail string) (*models.User, error)
	List(ctx context.Context, searchLoginTerm, searchEmailTerm, sortBy, sortDirection string, limit, offset int) ([]models.User, int64, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error

	// The service checks for duplicates up front, but two concurrent
	// signups can still race to the unique index.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return models.NewValidationError("login or email is already registered")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLoginOrEmail(ctx context.Context, loginOrEmail string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("login = ? OR email = ?", loginOrEmail, loginOrEmail).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

var userSortColumns = map[string]string{
	"login":     "login",
	"email":     "email",
	"createdAt": "created_at",
}

func (r *userRepository) List(ctx context.Context, searchLoginTerm, searchEmailTerm, sortBy, sortDirection string, limit, offset int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.User{})
	// The two search terms are OR-combined when both are present
	switch {
	case searchLoginTerm != "" && searchEmailTerm != "":
		base = base.Where("login ILIKE ? OR email ILIKE ?", "%"+searchLoginTerm+"%", "%"+searchEmailTerm+"%")
	case searchLoginTerm != "":
		base = base.Where("login ILIKE ?", "%"+searchLoginTerm+"%")
	case searchEmailTerm != "":
		base = base.Where("email ILIKE ?", "%"+searchEmailTerm+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := base.
		Order(orderClause(userSortColumns, sortBy, sortDirection)).
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
