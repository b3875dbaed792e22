package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"report_manager/internal/apperrors"
	"report_manager/internal/models"
	"report_manager/internal/repository"
)

type UserService interface {
	CreateUser(user *models.User, password string) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	GetActiveUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	RequireAdmin(userID uint) error
	// RequireSelfOrAdmin allows a user to act on their own data and an
	// admin to read anyone's.
	RequireSelfOrAdmin(actorID, userID uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	return s.userRepo.Create(user)
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) GetActiveUsers() ([]models.User, error) {
	return s.userRepo.GetActive()
}

func (s *userService) UpdateUser(user *models.User) error {
	return s.userRepo.Update(user)
}

func (s *userService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}

func (s *userService) RequireAdmin(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("%w: unknown user %d", apperrors.ErrPermission, userID)
	}
	if !user.IsAdmin() {
		return fmt.Errorf("%w: user %d is not an admin", apperrors.ErrPermission, userID)
	}
	return nil
}

func (s *userService) RequireSelfOrAdmin(actorID, userID uint) error {
	if actorID == userID {
		return nil
	}
	return s.RequireAdmin(actorID)
}
