package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"storehouse/internal/models"
	"storehouse/internal/repositories"
	"storehouse/internal/useragent"
	"storehouse/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginResult struct {
	User        *models.User
	Session     *models.Session
	AccessToken string
}

type SessionService interface {
	Login(email, password, userAgent, ip string) (*LoginResult, error)
	Logout(sessionID string) error
	ListLoginLogs(userID int64, limit, offset int) ([]*models.LoginLog, error)
}

type sessionService struct {
	sessions   repositories.SessionRepository
	logs       repositories.LoginLogRepository
	users      repositories.UserRepository
	passwords  repositories.PasswordRepository
	auth       AuthService
	sessionTTL time.Duration
}

func NewSessionService(
	sessions repositories.SessionRepository,
	logs repositories.LoginLogRepository,
	users repositories.UserRepository,
	passwords repositories.PasswordRepository,
	auth AuthService,
	sessionTTL time.Duration,
) SessionService {
	return &sessionService{
		sessions:   sessions,
		logs:       logs,
		users:      users,
		passwords:  passwords,
		auth:       auth,
		sessionTTL: sessionTTL,
	}
}

// Login — проверка пароля, сессия с абсолютным сроком, лог входа.
// Без user-agent лог входа создать нельзя, так что отклоняем до записи сессии.
func (s *sessionService) Login(email, password, userAgent, ip string) (*LoginResult, error) {
	info, err := useragent.Parse(userAgent)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	pw, err := s.passwords.GetByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup password: %w", err)
	}
	if pw == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(pw.Hash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID, err := utils.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logEntry := &models.LoginLog{
		SessionID: &session.ID,
		UserID:    user.ID,
		Browser:   info.Browser,
		Device:    info.Device,
		OS:        info.OS,
		IP:        ip,
	}
	if err := s.logs.Create(logEntry); err != nil {
		// сессию без лога не оставляем
		_ = s.sessions.Delete(session.ID)
		return nil, fmt.Errorf("create login log: %w", err)
	}

	token, err := s.auth.NewAccessToken(user.ID, session.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("[session][login] ok user_id=%d device=%s ip=%s", user.ID, info.Device, ip)
	return &LoginResult{User: user, Session: session, AccessToken: token}, nil
}

// Logout — ссылка в login_logs обнуляется, сама строка лога остаётся.
func (s *sessionService) Logout(sessionID string) error {
	if err := s.logs.ClearSession(sessionID); err != nil {
		return err
	}
	return s.sessions.Delete(sessionID)
}

func (s *sessionService) ListLoginLogs(userID int64, limit, offset int) ([]*models.LoginLog, error) {
	return s.logs.ListByUserID(userID, limit, offset)
}
