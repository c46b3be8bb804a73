package mailer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sony/gobreaker"
	mail "github.com/wneessen/go-mail"
)

var (
	// ErrNotConfigured is returned when SMTP credentials are absent.
	ErrNotConfigured = errors.New("mailer is not configured")

	errCircuitOpen = errors.New("mail circuit breaker open")
)

// BackoffConfig controls exponential backoff between delivery attempts.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Config bundles SMTP connection settings and the contact recipient.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// Mailer delivers contact-form messages over SMTP. Outbound delivery is
// wrapped in retries with exponential backoff and a circuit breaker, so
// a flapping mail server cannot stall the request path for long.
type Mailer struct {
	cfg     Config
	client  *mail.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// New creates a Mailer. When credentials are missing it returns a
// non-nil Mailer whose sends fail with ErrNotConfigured, so the rest of
// the app can run without mail set up.
func New(cfg Config) (*Mailer, error) {
	m := &Mailer{
		cfg: cfg,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "smtp",
			MaxRequests: 2,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}

	if !m.Configured() {
		return m, nil
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	m.client = client
	return m, nil
}

// Configured reports whether SMTP credentials and a recipient are set.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != "" && m.cfg.Recipient != ""
}

// SendContact delivers one contact-form message to the configured
// recipient.
func (m *Mailer) SendContact(ctx context.Context, name, email, message string) error {
	if m.client == nil {
		return ErrNotConfigured
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("mailer: invalid sender: %w", err)
	}
	if err := msg.To(m.cfg.Recipient); err != nil {
		return fmt.Errorf("mailer: invalid recipient: %w", err)
	}
	msg.Subject("AURA-MF Contact: " + name)
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("From: %s (%s)\n\n%s", name, email, message))

	return m.sendWithResilience(ctx, msg)
}

// sendWithResilience executes the delivery with retries, exponential
// backoff, and the circuit breaker.
func (m *Mailer) sendWithResilience(ctx context.Context, msg *mail.Msg) error {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		_, err := m.circuit.Execute(func() (interface{}, error) {
			return nil, m.client.DialAndSendWithContext(ctx, msg)
		})
		if err == nil {
			return nil
		}

		// If the circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= m.backoff.MaxRetries {
			return lastErr
		}

		delay := m.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if m.backoff.MaxInterval > 0 && delay > m.backoff.MaxInterval {
			delay = m.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
