package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"storehouse/internal/cache"
	"storehouse/internal/config"
	"storehouse/internal/repositories"
	"storehouse/internal/utils"
)

var (
	ErrRateLimited = errors.New("too many verification attempts")
	ErrCodeExpired = errors.New("verification code expired")
	ErrCodeInvalid = errors.New("verification code invalid")
	// ErrEmailSend — жёсткий сбой выдачи кода; по нему регистрация откатывается.
	ErrEmailSend = errors.New("error sending verification email")
)

// IssueResult — ровно один из вариантов:
// VerificationID при успехе, WaitMinutes при кулдауне, SendLimitReached при
// исчерпании суточной квоты. Мягкие лимиты — не ошибки.
type IssueResult struct {
	VerificationID   string
	WaitMinutes      int
	SendLimitReached bool
}

type VerificationService interface {
	IssueCode(ctx context.Context, email string) (*IssueResult, error)
	VerifyEmail(ctx context.Context, clientAddr, id, code string) error
}

type verificationService struct {
	store cache.Store
	email EmailService
	users repositories.UserRepository
	cfg   config.VerificationConfig

	now func() time.Time
}

func NewVerificationService(store cache.Store, email EmailService, users repositories.UserRepository, cfg config.VerificationConfig) VerificationService {
	return &verificationService{
		store: store,
		email: email,
		users: users,
		cfg:   cfg,
		now:   time.Now,
	}
}

func sentKey(email string) string   { return email + ":sent" }
func countKey(email string) string  { return email + ":count" }
func attemptKey(addr string) string { return addr + "_email_ver_attempt" }

// IssueCode — выдача одноразового кода на email.
// Порядок жёсткий: кулдаун -> суточная квота -> отправка -> записи в кэш.
// Три записи после отправки не атомарны между собой; сбой любой из них —
// жёсткая ошибка (ErrEmailSend), частичное состояние доживает свой TTL.
func (s *verificationService) IssueCode(ctx context.Context, email string) (*IssueResult, error) {
	// 1. Кулдаун: маркер живёт 10 минут, пока он есть — не шлём.
	sentAt, hasSent, err := s.store.Get(ctx, sentKey(email))
	if err != nil {
		return nil, fmt.Errorf("%w: cooldown lookup: %v", ErrEmailSend, err)
	}
	if hasSent {
		ms, _ := strconv.ParseInt(sentAt, 10, 64)
		elapsed := s.now().Sub(time.UnixMilli(ms))
		wait := s.cfg.CooldownTTLSeconds/60 - int(elapsed/time.Minute)
		return &IssueResult{WaitMinutes: wait}, nil
	}

	// 2. Суточная квота: счётчик инициализируется при первой отправке.
	countRaw, hasCount, err := s.store.Get(ctx, countKey(email))
	if err != nil {
		return nil, fmt.Errorf("%w: quota lookup: %v", ErrEmailSend, err)
	}
	if hasCount {
		n, _ := strconv.Atoi(countRaw)
		if n <= 0 {
			return &IssueResult{SendLimitReached: true}, nil
		}
	}

	code, err := utils.NewNumericCode(s.cfg.CodeLength)
	if err != nil {
		return nil, fmt.Errorf("%w: generate code: %v", ErrEmailSend, err)
	}
	id, err := utils.NewVerificationID(s.cfg.IDLength)
	if err != nil {
		return nil, fmt.Errorf("%w: generate id: %v", ErrEmailSend, err)
	}

	// 3. Отправка. Сбой транспорта — жёсткая ошибка, кэш не трогаем.
	if err := s.email.SendVerificationEmail(email, code); err != nil {
		log.Printf("[verify][issue] send failed email=%s err=%v", email, err)
		return nil, fmt.Errorf("%w: %v", ErrEmailSend, err)
	}

	// 4. Записи: entry, квота, кулдаун-маркер.
	if err := s.store.SetEx(ctx, id, code+":"+email, s.cfg.EntryTTL()); err != nil {
		return nil, fmt.Errorf("%w: store entry: %v", ErrEmailSend, err)
	}
	if !hasCount {
		if err := s.store.SetEx(ctx, countKey(email), strconv.Itoa(s.cfg.DailyCap), s.cfg.DailyTTL()); err != nil {
			return nil, fmt.Errorf("%w: init quota: %v", ErrEmailSend, err)
		}
	} else {
		if _, err := s.store.Decr(ctx, countKey(email)); err != nil {
			return nil, fmt.Errorf("%w: decr quota: %v", ErrEmailSend, err)
		}
	}
	nowMillis := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.store.SetEx(ctx, sentKey(email), nowMillis, s.cfg.CooldownTTL()); err != nil {
		return nil, fmt.Errorf("%w: set cooldown: %v", ErrEmailSend, err)
	}

	log.Printf("[verify][issue] ok email=%s id=%s", email, id)
	return &IssueResult{VerificationID: id}, nil
}

// VerifyEmail — четыре шага по порядку: квота попыток по адресу клиента,
// поиск entry, сверка кода, коммит (флаг у пользователя + удаление entry).
// При несовпадении кода entry остаётся — повтор в рамках квоты разрешён.
func (s *verificationService) VerifyEmail(ctx context.Context, clientAddr, id, code string) error {
	ak := attemptKey(clientAddr)
	attemptsRaw, hasAttempts, err := s.store.Get(ctx, ak)
	if err != nil {
		return fmt.Errorf("attempt quota lookup: %w", err)
	}
	if !hasAttempts {
		if err := s.store.SetEx(ctx, ak, strconv.Itoa(s.cfg.AttemptCap), s.cfg.AttemptTTL()); err != nil {
			return fmt.Errorf("attempt quota init: %w", err)
		}
	} else {
		n, _ := strconv.Atoi(attemptsRaw)
		if n < 1 {
			return ErrRateLimited
		}
		if _, err := s.store.Decr(ctx, ak); err != nil {
			return fmt.Errorf("attempt quota decr: %w", err)
		}
	}

	entry, found, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("entry lookup: %w", err)
	}
	if !found {
		return ErrCodeExpired
	}

	expected, email, ok := strings.Cut(entry, ":")
	if !ok {
		return fmt.Errorf("malformed verification entry for id %s", id)
	}
	if code != expected {
		return ErrCodeInvalid
	}

	if err := s.users.SetEmailVerified(email); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	// Одноразовость — явным удалением; compare-and-delete нет, гонка двух
	// верных кодов на одном id принята как есть.
	if err := s.store.Del(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	log.Printf("[verify][confirm] ok email=%s", email)
	return nil
}
