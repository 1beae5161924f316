package repository

import (
	"errors"
	"log"
	"strings"

	"github.com/selyo-ustp/request_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	FindUserByEmailOrStudentID(login string) (*domain.User, error)
	ExistsByEmailOrStudentID(email, studentID string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, errors.New("failed to create user")
	}

	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// FindUserByEmailOrStudentID lets students log in with either identifier.
// Emails are stored lowercased, student IDs keep their casing.
func (r *userRepository) FindUserByEmailOrStudentID(login string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.Where("email = ? OR student_id = ?",
		strings.ToLower(login), login).First(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ExistsByEmailOrStudentID(email, studentID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.User{}).
		Where("email = ? OR student_id = ?", email, studentID).
		Count(&count).Error
	if err != nil {
		log.Printf("count users error: %v", err)
		return false, errors.New("failed to check existing users")
	}
	return count > 0, nil
}
