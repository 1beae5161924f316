package services

import (
	"errors"
	"strings"

	"github.com/selyo-ustp/request_service/internal/apperr"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/dto"
	"github.com/selyo-ustp/request_service/internal/helper"
	"github.com/selyo-ustp/request_service/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	Register(input dto.RegisterRequest) (*domain.User, error)
	Login(input dto.UserLogin) (*domain.User, error)
	GetProfile(userID uint) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
	auth helper.Auth
}

func NewUserService(repo repository.UserRepository, auth helper.Auth) UserService {
	return &userService{
		repo: repo,
		auth: auth,
	}
}

func (u *userService) Register(input dto.RegisterRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	studentID := strings.TrimSpace(input.StudentID)
	name := strings.TrimSpace(input.Name)

	if email == "" || studentID == "" || name == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperr.NewValidation("invalid inputs")
	}
	if input.YearLevel != 0 && (input.YearLevel < 1 || input.YearLevel > 5) {
		return nil, apperr.NewValidation("year_level must be between 1 and 5")
	}

	exists, err := u.repo.ExistsByEmailOrStudentID(email, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.NewConflict("user with this email or student ID already exists")
	}

	hashed, err := u.auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.NewValidation(err.Error())
	}

	newUser := &domain.User{
		Role:         domain.RoleStudent,
		StudentID:    studentID,
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Program:      strings.TrimSpace(input.Program),
		YearLevel:    input.YearLevel,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *userService) Login(input dto.UserLogin) (*domain.User, error) {
	// keep the raw casing: student IDs like ADMIN001 are case-sensitive,
	// only the email comparison normalizes
	login := strings.TrimSpace(input.Email)
	password := strings.TrimSpace(input.Password)

	if login == "" || password == "" {
		return nil, errors.New("invalid credentials")
	}

	user, err := u.repo.FindUserByEmailOrStudentID(login)
	if err != nil || user == nil || user.ID == 0 {
		return nil, errors.New("invalid credentials")
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, errors.New("invalid credentials")
	}

	// the login form sends the expected role; reject cross-role logins
	if role := strings.TrimSpace(strings.ToLower(input.Role)); role != "" && user.Role != role {
		return nil, errors.New("this account is not registered as " + role)
	}

	return user, nil
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, apperr.NewValidation("invalid user id")
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
