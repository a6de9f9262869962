package newsletter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jammshop/domain"

	"github.com/go-playground/validator/v10"
)

const testTokenKey = "0123456789abcdef0123456789abcdef"

type fakeNewsletterRepo struct {
	subs map[string]*domain.NewsletterSubscriber
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{subs: make(map[string]*domain.NewsletterSubscriber)}
}

func (f *fakeNewsletterRepo) Create(ctx context.Context, sub *domain.NewsletterSubscriber) error {
	sub.ID = uint64(len(f.subs) + 1)
	f.subs[sub.Email] = sub
	return nil
}

func (f *fakeNewsletterRepo) FindByEmail(ctx context.Context, email string) (domain.NewsletterSubscriber, error) {
	sub, ok := f.subs[email]
	if !ok {
		return domain.NewsletterSubscriber{}, errors.New("subscriber not found")
	}
	return *sub, nil
}

func (f *fakeNewsletterRepo) Confirm(ctx context.Context, email string) error {
	sub, ok := f.subs[email]
	if !ok {
		return errors.New("subscriber not found")
	}
	now := time.Now()
	sub.Confirmed = true
	sub.ConfirmedAt = &now
	return nil
}

func (f *fakeNewsletterRepo) Delete(ctx context.Context, email string) error {
	delete(f.subs, email)
	return nil
}

type fakeNotifRepo struct {
	lastMessage string
	sent        int
}

func (f *fakeNotifRepo) SendEmail(toName, toEmail, subject, message string) error {
	f.lastMessage = message
	f.sent++
	return nil
}

// confirmToken pulls the token out of the confirmation link in the email body.
func confirmToken(t *testing.T, message string) string {
	t.Helper()
	idx := strings.Index(message, "/api/v1/newsletter/confirm/")
	if idx < 0 {
		t.Fatalf("no confirmation link in message: %s", message)
	}
	rest := message[idx+len("/api/v1/newsletter/confirm/"):]
	if end := strings.IndexAny(rest, "<\n "); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func TestSubscribeAndConfirm(t *testing.T) {
	repo := newFakeNewsletterRepo()
	notif := &fakeNotifRepo{}
	svc := NewNewsletterService(repo, validator.New(), notif, testTokenKey, "http://localhost:8080")

	sub, err := svc.Subscribe(context.Background(), "marie@example.com", "Marie")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Confirmed {
		t.Error("new subscriber should start unconfirmed")
	}
	if notif.sent != 1 {
		t.Fatalf("confirmation emails sent = %d, want 1", notif.sent)
	}

	token := confirmToken(t, notif.lastMessage)
	if err := svc.Confirm(context.Background(), token); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	stored, err := repo.FindByEmail(context.Background(), "marie@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.Confirmed {
		t.Error("subscriber should be confirmed")
	}

	// confirming twice is an error
	if err := svc.Confirm(context.Background(), token); err == nil {
		t.Error("expected error on double confirm")
	}
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	svc := NewNewsletterService(newFakeNewsletterRepo(), validator.New(), &fakeNotifRepo{}, testTokenKey, "")

	if _, err := svc.Subscribe(context.Background(), "not-an-email", ""); err == nil {
		t.Error("expected error for invalid email")
	}
}

func TestSubscribe_DuplicateConfirmed(t *testing.T) {
	repo := newFakeNewsletterRepo()
	notif := &fakeNotifRepo{}
	svc := NewNewsletterService(repo, validator.New(), notif, testTokenKey, "")

	if _, err := svc.Subscribe(context.Background(), "marie@example.com", "Marie"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token := confirmToken(t, notif.lastMessage)
	if err := svc.Confirm(context.Background(), token); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if _, err := svc.Subscribe(context.Background(), "marie@example.com", "Marie"); err == nil {
		t.Error("expected error for already confirmed email")
	}
}

func TestSubscribe_DuplicateUnconfirmedResends(t *testing.T) {
	repo := newFakeNewsletterRepo()
	notif := &fakeNotifRepo{}
	svc := NewNewsletterService(repo, validator.New(), notif, testTokenKey, "")

	if _, err := svc.Subscribe(context.Background(), "marie@example.com", "Marie"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Subscribe(context.Background(), "marie@example.com", "Marie"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if notif.sent != 2 {
		t.Errorf("confirmation emails sent = %d, want 2", notif.sent)
	}
}

func TestConfirm_GarbageToken(t *testing.T) {
	svc := NewNewsletterService(newFakeNewsletterRepo(), validator.New(), &fakeNotifRepo{}, testTokenKey, "")

	if err := svc.Confirm(context.Background(), "garbage"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestUnsubscribe(t *testing.T) {
	repo := newFakeNewsletterRepo()
	svc := NewNewsletterService(repo, validator.New(), &fakeNotifRepo{}, testTokenKey, "")

	if _, err := svc.Subscribe(context.Background(), "marie@example.com", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "marie@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "marie@example.com"); err == nil {
		t.Error("expected error for unknown subscriber")
	}
}
