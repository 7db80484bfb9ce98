package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"storehouse/internal/models"
	"storehouse/internal/repositories"
)

var ErrEmailTaken = errors.New("user with this email already exists")

type SignupResult struct {
	UserID int64
	Issue  *IssueResult
}

type UserService interface {
	SignUp(ctx context.Context, name, email, password string) (*SignupResult, error)
	ResendVerification(ctx context.Context, email string) (*IssueResult, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id int64) error
	ListUsers(limit, offset int) ([]*models.User, error)
	GetUserCount() (int, error)
}

type userService struct {
	repo         repositories.UserRepository
	passwords    repositories.PasswordRepository
	authService  AuthService
	verification VerificationService
}

func NewUserService(
	repo repositories.UserRepository,
	passwords repositories.PasswordRepository,
	authService AuthService,
	verification VerificationService,
) UserService {
	return &userService{
		repo:         repo,
		passwords:    passwords,
		authService:  authService,
		verification: verification,
	}
}

// SignUp — регистрация: user -> password -> выдача кода.
// Внешний email-вызов вне транзакции, поэтому при жёстком сбое выдачи
// созданный пользователь удаляется компенсирующим DELETE — сироту не оставляем.
func (s *userService) SignUp(ctx context.Context, name, email, password string) (*SignupResult, error) {
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		FullName: name,
		UserName: usernameFromEmail(email),
		Email:    email,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		s.compensate(email)
		return nil, err
	}
	if err := s.passwords.Create(user.ID, hash); err != nil {
		s.compensate(email)
		return nil, fmt.Errorf("create password: %w", err)
	}

	issue, err := s.verification.IssueCode(ctx, email)
	if err != nil {
		s.compensate(email)
		return nil, err
	}

	log.Printf("[user][signup] created user_id=%d email=%s", user.ID, email)
	return &SignupResult{UserID: user.ID, Issue: issue}, nil
}

// ResendVerification — повторная выдача кода уже созданному пользователю.
// Кулдаун и квоты отрабатывают внутри IssueCode.
func (s *userService) ResendVerification(ctx context.Context, email string) (*IssueResult, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("no user with email %s", email)
	}
	if user.EmailVerified {
		return nil, fmt.Errorf("email %s is already verified", email)
	}
	return s.verification.IssueCode(ctx, email)
}

func (s *userService) compensate(email string) {
	if err := s.repo.DeleteByEmail(email); err != nil {
		log.Printf("[user][signup] compensating delete failed email=%s err=%v", email, err)
	}
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (s *userService) GetUserByID(id int64) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *userService) UpdateUser(user *models.User) error {
	return s.repo.Update(user)
}

func (s *userService) DeleteUser(id int64) error {
	return s.repo.Delete(id)
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) GetUserCount() (int, error) {
	return s.repo.GetCount()
}
