package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// NewsletterRepository contract interface
type NewsletterRepository interface {
	Create(ctx context.Context, sub *domain.NewsletterSubscriber) error
	FindByEmail(ctx context.Context, email string) (domain.NewsletterSubscriber, error)
	Confirm(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

const (
	confirmationTTLMinutes = 60

	SubjectConfirmSubscription = "Confirmez votre inscription"
	EmailBodyConfirm           = `Bonjour %v, confirmez votre inscription a la newsletter JammShop en ouvrant le lien ci-dessous</br></br>%v</br>note: le lien est valable %v minutes`
)

type newsletterService struct {
	newsletterRepo   NewsletterRepository
	validate         *validator.Validate
	notifRepo        NotificationRepository
	tokenKey         string
	appDeploymentUrl string
}

func NewNewsletterService(
	newsletterRepo NewsletterRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenKey string,
	appDeploymentUrl string,
) *newsletterService {
	return &newsletterService{
		newsletterRepo:   newsletterRepo,
		validate:         validate,
		notifRepo:        notifRepo,
		tokenKey:         tokenKey,
		appDeploymentUrl: appDeploymentUrl,
	}
}

// Subscribe registers an email and sends a double opt-in confirmation link.
func (s *newsletterService) Subscribe(ctx context.Context, email, fullName string) (domain.NewsletterSubscriber, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.NewsletterSubscriber{}, errors.New("invalid email format")
	}

	existing, err := s.newsletterRepo.FindByEmail(ctx, email)
	if err == nil && existing.ID > 0 {
		if existing.Confirmed {
			return domain.NewsletterSubscriber{}, errors.New("email already subscribed")
		}
		// unconfirmed duplicate: resend the confirmation link
		if err := s.sendConfirmation(fullName, email); err != nil {
			logger.Warn("failed to resend confirmation email", "error", err)
		}
		return existing, nil
	}

	sub := domain.NewsletterSubscriber{
		Email:    email,
		FullName: fullName,
	}

	if err := s.newsletterRepo.Create(ctx, &sub); err != nil {
		logger.Error("failed to create newsletter subscriber", "error", err)
		return domain.NewsletterSubscriber{}, err
	}

	if err := s.sendConfirmation(fullName, email); err != nil {
		logger.Warn("failed to send confirmation email", "error", err)
	}

	return sub, nil
}

func (s *newsletterService) sendConfirmation(fullName, email string) error {
	expAt := time.Now().Add(confirmationTTLMinutes * time.Minute).Unix()

	token := fmt.Sprintf("%v|%v", email, expAt)
	tokenEncrypt, err := goshortcute.AESCBCEncrypt([]byte(token), []byte(s.tokenKey))
	if err != nil {
		return fmt.Errorf("failed to encrypt confirmation token: %w", err)
	}
	encoded := goshortcute.StringtoBase64Encode(tokenEncrypt)
	confirmLink := s.appDeploymentUrl + "/api/v1/newsletter/confirm/" + encoded

	return s.notifRepo.SendEmail(
		fullName,
		email,
		SubjectConfirmSubscription,
		fmt.Sprintf(EmailBodyConfirm, fullName, confirmLink, confirmationTTLMinutes),
	)
}

// Confirm validates a confirmation token and activates the subscription.
func (s *newsletterService) Confirm(ctx context.Context, token string) error {
	decoded := goshortcute.StringtoBase64Decode(token)
	decrypted, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.tokenKey))
	if err != nil {
		return errors.New("invalid confirmation token")
	}

	parts := strings.Split(string(decrypted), "|")
	if len(parts) != 2 {
		return errors.New("invalid confirmation token")
	}

	email := parts[0]
	expAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return errors.New("invalid confirmation token")
	}

	if time.Now().Unix() > expAt {
		return errors.New("confirmation token expired")
	}

	sub, err := s.newsletterRepo.FindByEmail(ctx, email)
	if err != nil {
		return errors.New("subscriber not found")
	}
	if sub.Confirmed {
		return errors.New("email already confirmed")
	}

	if err := s.newsletterRepo.Confirm(ctx, email); err != nil {
		logger.Error("failed to confirm subscriber", "error", err)
		return fmt.Errorf("failed to confirm subscription: %w", err)
	}

	logger.Info("newsletter subscription confirmed", "email", email)

	return nil
}

func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return errors.New("invalid email format")
	}

	if _, err := s.newsletterRepo.FindByEmail(ctx, email); err != nil {
		return errors.New("subscriber not found")
	}

	return s.newsletterRepo.Delete(ctx, email)
}
