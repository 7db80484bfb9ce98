package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storehouse/internal/models"
	"storehouse/internal/repositories"
)

type memUserRepo struct {
	repositories.UserRepository
	byEmail   map[string]*models.User
	createErr error
	nextID    int64
	deleted   []string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*models.User{}, nextID: 1}
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	return r.byEmail[email], nil
}

func (r *memUserRepo) Create(u *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) DeleteByEmail(email string) error {
	r.deleted = append(r.deleted, email)
	delete(r.byEmail, email)
	return nil
}

type memPasswordRepo struct {
	repositories.PasswordRepository
	hashes    map[int64]string
	createErr error
}

func newMemPasswordRepo() *memPasswordRepo {
	return &memPasswordRepo{hashes: map[int64]string{}}
}

func (r *memPasswordRepo) Create(userID int64, hash string) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.hashes[userID] = hash
	return nil
}

func (r *memPasswordRepo) GetByUserID(userID int64) (*models.Password, error) {
	h, ok := r.hashes[userID]
	if !ok {
		return nil, nil
	}
	return &models.Password{UserID: userID, Hash: h}, nil
}

type stubVerification struct {
	issueRes   *IssueResult
	issueErr   error
	issuedFor  []string
	verifyFunc func(clientAddr, id, code string) error
}

func (s *stubVerification) IssueCode(_ context.Context, email string) (*IssueResult, error) {
	s.issuedFor = append(s.issuedFor, email)
	if s.issueErr != nil {
		return nil, s.issueErr
	}
	return s.issueRes, nil
}

func (s *stubVerification) VerifyEmail(_ context.Context, clientAddr, id, code string) error {
	if s.verifyFunc != nil {
		return s.verifyFunc(clientAddr, id, code)
	}
	return nil
}

func newTestUserService(users *memUserRepo, passwords *memPasswordRepo, verif *stubVerification) UserService {
	auth := NewAuthService(bcrypt.MinCost, 15*time.Minute)
	return NewUserService(users, passwords, auth, verif)
}

func TestSignUp_CreatesUserPasswordAndIssue(t *testing.T) {
	users := newMemUserRepo()
	passwords := newMemPasswordRepo()
	verif := &stubVerification{issueRes: &IssueResult{VerificationID: "verid123"}}
	svc := newTestUserService(users, passwords, verif)

	res, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "verid123", res.Issue.VerificationID)

	u := users.byEmail["alice@example.com"]
	require.NotNil(t, u)
	assert.Equal(t, "Alice", u.FullName)
	assert.Equal(t, "alice", u.UserName, "username defaults to email local part")
	assert.False(t, u.EmailVerified)

	hash, ok := passwords.hashes[u.ID]
	require.True(t, ok, "exactly one password row")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret123")))
	assert.NotContains(t, hash, "secret123")

	assert.Equal(t, []string{"alice@example.com"}, verif.issuedFor)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	users := newMemUserRepo()
	users.byEmail["alice@example.com"] = &models.User{ID: 7, Email: "alice@example.com"}
	verif := &stubVerification{issueRes: &IssueResult{VerificationID: "x"}}
	svc := newTestUserService(users, newMemPasswordRepo(), verif)

	_, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, verif.issuedFor, "no code issued for duplicate")
	assert.Empty(t, users.deleted)
}

func TestSignUp_EmailFailureRollsBackUser(t *testing.T) {
	users := newMemUserRepo()
	passwords := newMemPasswordRepo()
	verif := &stubVerification{issueErr: fmt.Errorf("%w: smtp down", ErrEmailSend)}
	svc := newTestUserService(users, passwords, verif)

	_, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "secret123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmailSend))

	assert.Equal(t, []string{"alice@example.com"}, users.deleted, "compensating delete ran")
	assert.Nil(t, users.byEmail["alice@example.com"], "no orphan account")
}

func TestSignUp_PasswordFailureRollsBackUser(t *testing.T) {
	users := newMemUserRepo()
	passwords := newMemPasswordRepo()
	passwords.createErr = errors.New("db down")
	verif := &stubVerification{issueRes: &IssueResult{VerificationID: "x"}}
	svc := newTestUserService(users, passwords, verif)

	_, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, []string{"alice@example.com"}, users.deleted)
	assert.Empty(t, verif.issuedFor)
}

func TestSignUp_SoftLimitStillCreatesUser(t *testing.T) {
	users := newMemUserRepo()
	verif := &stubVerification{issueRes: &IssueResult{WaitMinutes: 7}}
	svc := newTestUserService(users, newMemPasswordRepo(), verif)

	res, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, 7, res.Issue.WaitMinutes)
	assert.NotNil(t, users.byEmail["alice@example.com"], "soft limit is not a failure")
}

func TestResendVerification(t *testing.T) {
	users := newMemUserRepo()
	users.byEmail["alice@example.com"] = &models.User{ID: 1, Email: "alice@example.com"}
	users.byEmail["bob@example.com"] = &models.User{ID: 2, Email: "bob@example.com", EmailVerified: true}
	verif := &stubVerification{issueRes: &IssueResult{VerificationID: "verid456"}}
	svc := newTestUserService(users, newMemPasswordRepo(), verif)

	res, err := svc.ResendVerification(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "verid456", res.VerificationID)

	_, err = svc.ResendVerification(context.Background(), "bob@example.com")
	assert.Error(t, err, "already verified")

	_, err = svc.ResendVerification(context.Background(), "nobody@example.com")
	assert.Error(t, err, "unknown email")
}
