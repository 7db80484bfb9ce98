package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storehouse/internal/cache"
	"storehouse/internal/config"
	"storehouse/internal/repositories"
)

type sentMail struct {
	to   string
	code string
}

type stubMailer struct {
	sent []sentMail
	err  error
}

func (m *stubMailer) SendVerificationEmail(email, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: email, code: code})
	return nil
}

type stubUsers struct {
	repositories.UserRepository
	verified []string
	err      error
}

func (s *stubUsers) SetEmailVerified(email string) error {
	if s.err != nil {
		return s.err
	}
	s.verified = append(s.verified, email)
	return nil
}

func testVerificationConfig() config.VerificationConfig {
	return config.VerificationConfig{
		CodeLength:         6,
		IDLength:           24,
		EntryTTLSeconds:    3600,
		CooldownTTLSeconds: 600,
		DailyCap:           4,
		DailyTTLSeconds:    86400,
		AttemptCap:         9,
		AttemptTTLSeconds:  3600,
	}
}

func newTestService(t *testing.T) (*verificationService, *miniredis.Miniredis, *stubMailer, *stubUsers) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mailer := &stubMailer{}
	users := &stubUsers{}
	svc := &verificationService{
		store: cache.NewRedisStoreFromClient(client),
		email: mailer,
		users: users,
		cfg:   testVerificationConfig(),
		now:   time.Now,
	}
	return svc, mr, mailer, users
}

func TestIssueCode_FirstSend(t *testing.T) {
	svc, mr, mailer, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.IssueCode(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Len(t, res.VerificationID, 24)
	assert.Zero(t, res.WaitMinutes)
	assert.False(t, res.SendLimitReached)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].to)
	assert.Len(t, mailer.sent[0].code, 6)

	// entry = "<code>:<email>", TTL 1 час
	entry, err := mr.Get(res.VerificationID)
	require.NoError(t, err)
	assert.Equal(t, mailer.sent[0].code+":alice@example.com", entry)
	assert.Equal(t, time.Hour, mr.TTL(res.VerificationID))

	// квота инициализируется на первом письме, кулдаун-маркер ставится
	count, err := mr.Get("alice@example.com:count")
	require.NoError(t, err)
	assert.Equal(t, "4", count)
	assert.Equal(t, 24*time.Hour, mr.TTL("alice@example.com:count"))
	assert.True(t, mr.Exists("alice@example.com:sent"))
	assert.Equal(t, 10*time.Minute, mr.TTL("alice@example.com:sent"))
}

func TestIssueCode_CooldownBlocksSend(t *testing.T) {
	svc, mr, mailer, _ := newTestService(t)
	ctx := context.Background()

	base := time.Now()
	svc.now = func() time.Time { return base }

	sentAt := base.Add(-3*time.Minute - 30*time.Second)
	mr.Set("alice@example.com:sent", strconv.FormatInt(sentAt.UnixMilli(), 10))

	res, err := svc.IssueCode(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, res.VerificationID)
	assert.Equal(t, 7, res.WaitMinutes)
	assert.Empty(t, mailer.sent, "no email inside cooldown window")
}

func TestIssueCode_DailyLimitReached(t *testing.T) {
	svc, mr, mailer, _ := newTestService(t)
	ctx := context.Background()

	mr.Set("alice@example.com:count", "0")

	res, err := svc.IssueCode(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, res.SendLimitReached)
	assert.Empty(t, res.VerificationID)
	assert.Empty(t, mailer.sent)
}

func TestIssueCode_DecrementsQuota(t *testing.T) {
	svc, mr, mailer, _ := newTestService(t)
	ctx := context.Background()

	mr.Set("alice@example.com:count", "2")

	res, err := svc.IssueCode(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, res.VerificationID)
	require.Len(t, mailer.sent, 1)

	count, err := mr.Get("alice@example.com:count")
	require.NoError(t, err)
	assert.Equal(t, "1", count)
}

func TestIssueCode_SendFailureIsHard(t *testing.T) {
	svc, mr, mailer, _ := newTestService(t)
	ctx := context.Background()

	mailer.err = errors.New("smtp down")

	res, err := svc.IssueCode(ctx, "alice@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmailSend))
	assert.Nil(t, res)

	// при сбое транспорта кэш не трогаем
	assert.False(t, mr.Exists("alice@example.com:count"))
	assert.False(t, mr.Exists("alice@example.com:sent"))
}

func TestVerifyEmail_HappyPathThenExpired(t *testing.T) {
	svc, mr, _, users := newTestService(t)
	ctx := context.Background()

	mr.Set("someverificationid", "123456:alice@example.com")

	err := svc.VerifyEmail(ctx, "10.0.0.1", "someverificationid", "123456")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com"}, users.verified)
	assert.False(t, mr.Exists("someverificationid"), "entry consumed")

	// повторное использование того же id
	err = svc.VerifyEmail(ctx, "10.0.0.1", "someverificationid", "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyEmail_WrongCodeKeepsEntry(t *testing.T) {
	svc, mr, _, users := newTestService(t)
	ctx := context.Background()

	mr.Set("someverificationid", "123456:alice@example.com")

	err := svc.VerifyEmail(ctx, "10.0.0.1", "someverificationid", "654321")
	assert.ErrorIs(t, err, ErrCodeInvalid)
	assert.Empty(t, users.verified)
	assert.True(t, mr.Exists("someverificationid"), "entry survives mismatch")

	// верный код после промаха всё ещё работает
	err = svc.VerifyEmail(ctx, "10.0.0.1", "someverificationid", "123456")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com"}, users.verified)
}

func TestVerifyEmail_MissingEntry(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.VerifyEmail(context.Background(), "10.0.0.1", "neverexisted", "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyEmail_AttemptQuota(t *testing.T) {
	svc, mr, _, users := newTestService(t)
	ctx := context.Background()

	// первый вызов инициализирует счётчик попыток
	_ = svc.VerifyEmail(ctx, "10.0.0.1", "nosuchid", "123456")
	attempts, err := mr.Get("10.0.0.1_email_ver_attempt")
	require.NoError(t, err)
	assert.Equal(t, "9", attempts)
	assert.Equal(t, time.Hour, mr.TTL("10.0.0.1_email_ver_attempt"))

	// второй вызов декрементирует
	_ = svc.VerifyEmail(ctx, "10.0.0.1", "nosuchid", "123456")
	attempts, err = mr.Get("10.0.0.1_email_ver_attempt")
	require.NoError(t, err)
	assert.Equal(t, "8", attempts)

	// исчерпанная квота блокирует даже верный код, entry не расходуется
	mr.Set("10.0.0.1_email_ver_attempt", "0")
	mr.Set("someverificationid", "123456:alice@example.com")
	err = svc.VerifyEmail(ctx, "10.0.0.1", "someverificationid", "123456")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Empty(t, users.verified)
	assert.True(t, mr.Exists("someverificationid"))

	// другой адрес не задет
	err = svc.VerifyEmail(ctx, "10.0.0.2", "someverificationid", "123456")
	require.NoError(t, err)
}

func TestVerifyEmail_EntryExpiresByTTL(t *testing.T) {
	svc, mr, mailer, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.IssueCode(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	mr.FastForward(time.Hour + time.Second)

	err = svc.VerifyEmail(ctx, "10.0.0.1", res.VerificationID, mailer.sent[0].code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}
