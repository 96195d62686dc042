package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"tokengate/internal/audit"
	"tokengate/internal/platform/middleware"
	"tokengate/internal/policy/metrics"
	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/sentinel"
)

// PolicyStore is the persistence surface the administrative flow depends on.
type PolicyStore interface {
	Create(ctx context.Context, policy *models.GatingPolicy) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.GatingPolicy, error)
	FindByChatID(ctx context.Context, chatID string) (*models.GatingPolicy, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByChatID(ctx context.Context, chatID string) error
	Update(ctx context.Context, policy *models.GatingPolicy) error
}

// AuditPublisher records policy lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates gating policy administration. The issuance core never
// writes through this service; only the bot admin flow does.
type Service struct {
	policies       PolicyStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	clock          func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// New constructs a Service.
func New(policies PolicyStore, opts ...Option) *Service {
	s := &Service{policies: policies, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePolicy registers a new gate for a chat. A chat with an active policy
// rejects the attempt with a conflict; the admin must delete first, creation
// never silently overwrites.
func (s *Service) CreatePolicy(ctx context.Context, chatID, tokenID string, minimum float64) (*models.GatingPolicy, error) {
	chatID = strings.TrimSpace(chatID)
	tokenID = strings.TrimSpace(tokenID)

	// Pre-check gives a clean conflict answer; the store's unique index
	// still backstops concurrent creates.
	if _, err := s.policies.FindByChatID(ctx, chatID); err == nil {
		s.countConflict()
		return nil, dErrors.New(dErrors.CodeConflict, "an active policy already exists for this chat; delete it before creating a new one")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing policy")
	}

	p, err := models.NewGatingPolicy(uuid.New(), chatID, tokenID, minimum, s.clock())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.policies.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.countConflict()
			return nil, dErrors.New(dErrors.CodeConflict, "an active policy already exists for this chat; delete it before creating a new one")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create policy")
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionPolicyCreated,
		PolicyID: p.ID.String(),
		ChatID:   p.ChatID,
	})
	if s.metrics != nil {
		s.metrics.PoliciesCreated.Inc()
	}
	return p, nil
}

// GetPolicy fetches a policy by its public link identifier.
func (s *Service) GetPolicy(ctx context.Context, id uuid.UUID) (*models.GatingPolicy, error) {
	p, err := s.policies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "policy not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy")
	}
	return p, nil
}

// GetPolicyByChat returns the chat's active policy, if any.
func (s *Service) GetPolicyByChat(ctx context.Context, chatID string) (*models.GatingPolicy, error) {
	p, err := s.policies.FindByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no active policy for this chat")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy")
	}
	return p, nil
}

// DeletePolicyByChat removes the chat's active policy, freeing the slot for a
// new one.
func (s *Service) DeletePolicyByChat(ctx context.Context, chatID string) error {
	p, err := s.policies.FindByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "no active policy for this chat")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy")
	}
	if err := s.policies.DeleteByChatID(ctx, chatID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete policy")
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionPolicyDeleted,
		PolicyID: p.ID.String(),
		ChatID:   chatID,
	})
	if s.metrics != nil {
		s.metrics.PoliciesDeleted.Inc()
	}
	return nil
}

// UpdateDisplay mutates cosmetic fields only. Nil pointers leave the current
// value untouched.
func (s *Service) UpdateDisplay(ctx context.Context, id uuid.UUID, name, imageURL, description *string) (*models.GatingPolicy, error) {
	p, err := s.policies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "policy not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy")
	}

	if name != nil {
		p.Name = strings.TrimSpace(*name)
	}
	if imageURL != nil {
		p.ImageURL = strings.TrimSpace(*imageURL)
	}
	if description != nil {
		p.Description = strings.TrimSpace(*description)
	}
	p.UpdatedAt = s.clock()

	if err := s.policies.Update(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update policy")
	}
	return p, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	event.RequestID = middleware.GetRequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"event", event.Action,
			"policy_id", event.PolicyID,
			"chat_id", event.ChatID,
			"request_id", event.RequestID,
			"log_type", "audit",
		)
	}
	if s.auditPublisher != nil {
		_ = s.auditPublisher.Emit(ctx, event)
	}
}

func (s *Service) countConflict() {
	if s.metrics != nil {
		s.metrics.CreationConflicts.Inc()
	}
}
