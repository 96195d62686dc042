// Package invite mints single-use, expiring group invite links.
package invite

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tokengate/internal/telegram"
	dErrors "tokengate/pkg/domain-errors"
)

const (
	// DefaultTTL bounds how long a minted link stays redeemable.
	DefaultTTL = time.Hour

	// memberLimit caps each link at a single join.
	memberLimit = 1
)

// LinkCreator is the slice of the Telegram client the issuer needs.
type LinkCreator interface {
	CreateChatInviteLink(ctx context.Context, chatID string, memberLimit int, expireAt time.Time) (string, error)
}

// Credential is a minted invite: the link itself plus the constraints
// it was created with.
type Credential struct {
	ChatID    string    `json:"chat_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	MaxUses   int       `json:"max_uses"`
}

// Expired reports whether the credential is past its expiry at the given time.
func (c Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Issuer creates invite credentials through the Telegram Bot API.
type Issuer struct {
	client LinkCreator
	ttl    time.Duration
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithTTL overrides the default link lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Issuer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(clock func() time.Time) Option {
	return func(i *Issuer) {
		if clock != nil {
			i.clock = clock
		}
	}
}

// NewIssuer builds an Issuer over the given Telegram client.
func NewIssuer(client LinkCreator, opts ...Option) *Issuer {
	i := &Issuer{
		client: client,
		ttl:    DefaultTTL,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue mints a fresh single-use invite link for the chat. The link
// expires after the issuer's TTL and admits exactly one member.
func (i *Issuer) Issue(ctx context.Context, chatID string) (Credential, error) {
	expiresAt := i.clock().Add(i.ttl)

	url, err := i.client.CreateChatInviteLink(ctx, chatID, memberLimit, expiresAt)
	if err != nil {
		i.logger.ErrorContext(ctx, "invite link creation failed",
			slog.String("chat_id", chatID),
			slog.String("error", err.Error()))

		var apiErr *telegram.APIError
		if errors.As(err, &apiErr) {
			return Credential{}, dErrors.New(dErrors.CodeInternal, "Failed to generate invite link.").
				WithDetails(apiErr.Description)
		}
		return Credential{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "Failed to generate invite link.")
	}

	return Credential{
		ChatID:    chatID,
		URL:       url,
		ExpiresAt: expiresAt,
		MaxUses:   memberLimit,
	}, nil
}
