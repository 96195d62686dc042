// Package service coordinates the invite issuance pipeline: policy
// lookup, balance resolution, the gate decision, and link minting.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tokengate/internal/audit"
	"tokengate/internal/gate"
	"tokengate/internal/invite"
	"tokengate/internal/issuance/metrics"
	"tokengate/internal/ledger"
	"tokengate/internal/platform/middleware"
	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/sentinel"
)

const policyNotFoundMessage = "Token address not found in the database."

// PolicyStore is the read surface the pipeline needs. Issuance never
// mutates policies.
type PolicyStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.GatingPolicy, error)
}

// BalanceResolver answers balance and metadata queries against the
// ledger oracles.
type BalanceResolver interface {
	Resolve(ctx context.Context, chain models.Chain, walletAddress, tokenID string) (float64, error)
	Metadata(ctx context.Context, tokenID string) (ledger.TokenMetadata, models.Chain, error)
}

// InviteIssuer mints single-use invite credentials.
type InviteIssuer interface {
	Issue(ctx context.Context, chatID string) (invite.Credential, error)
}

// IssuedStore remembers which (policy, wallet) pairs already hold a
// live credential.
type IssuedStore interface {
	Find(ctx context.Context, policyID, wallet string) (invite.Credential, error)
	Save(ctx context.Context, policyID, wallet string, cred invite.Credential) error
}

// AuditPublisher records issuance lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// ValidationResult reports the outcome of a passing gate check.
type ValidationResult struct {
	ChatID       string
	TokenBalance float64
}

// Service runs the issuance pipeline.
type Service struct {
	policies       PolicyStore
	resolver       BalanceResolver
	issuer         InviteIssuer
	issued         IssuedStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	clock          func() time.Time
}

type Option func(*Service)

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
func New(policies PolicyStore, resolver BalanceResolver, issuer InviteIssuer, issued IssuedStore, opts ...Option) *Service {
	s := &Service{
		policies: policies,
		resolver: resolver,
		issuer:   issuer,
		issued:   issued,
		tracer:   otel.Tracer("tokengate/issuance"),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateToken checks whether the wallet clears the policy's minimum
// balance. It does not mint anything; a passing result carries the chat
// and the observed balance so the caller can request a link next.
func (s *Service) ValidateToken(ctx context.Context, policyID, wallet string) (*ValidationResult, error) {
	ctx, span := s.tracer.Start(ctx, "issuance.ValidateToken",
		trace.WithAttributes(attribute.String("policy_id", policyID)))
	defer span.End()

	policy, err := s.lookupPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	balance, err := s.resolveBalance(ctx, policy, wallet)
	if err != nil {
		return nil, err
	}

	decision := gate.Decide(balance, policy.MinimumTokenCount)
	if !decision.Allowed {
		s.denyGate(ctx, policy, wallet, decision)
		return nil, dErrors.New(dErrors.CodeValidation, decision.Reason())
	}

	return &ValidationResult{ChatID: policy.ChatID, TokenBalance: balance}, nil
}

// RequestInvite runs the full pipeline for a wallet: gate check, then
// reuse of any still valid credential, then a fresh mint. The reused
// flag tells the caller whether the link was served from a prior issue.
func (s *Service) RequestInvite(ctx context.Context, policyID, wallet string) (invite.Credential, bool, error) {
	ctx, span := s.tracer.Start(ctx, "issuance.RequestInvite",
		trace.WithAttributes(attribute.String("policy_id", policyID)))
	defer span.End()

	policy, err := s.lookupPolicy(ctx, policyID)
	if err != nil {
		return invite.Credential{}, false, err
	}

	balance, err := s.resolveBalance(ctx, policy, wallet)
	if err != nil {
		return invite.Credential{}, false, err
	}

	decision := gate.Decide(balance, policy.MinimumTokenCount)
	if !decision.Allowed {
		s.denyGate(ctx, policy, wallet, decision)
		return invite.Credential{}, false, dErrors.New(dErrors.CodeValidation, decision.Reason())
	}

	// A repeat request from the same wallet must not mint a second
	// link while the first is still live.
	if cred, err := s.issued.Find(ctx, policy.ID.String(), wallet); err == nil {
		if !cred.Expired(s.clock()) {
			s.logAudit(ctx, audit.Event{
				Action:   audit.ActionInviteReused,
				PolicyID: policy.ID.String(),
				ChatID:   policy.ChatID,
				Wallet:   wallet,
			})
			if s.metrics != nil {
				s.metrics.InvitesReused.Inc()
			}
			return cred, true, nil
		}
	} else if !errors.Is(err, sentinel.ErrNotFound) && s.logger != nil {
		s.logger.WarnContext(ctx, "issued store lookup failed, minting fresh",
			"policy_id", policy.ID.String(), "error", err)
	}

	cred, err := s.mint(ctx, policy.ChatID)
	if err != nil {
		return invite.Credential{}, false, err
	}

	if err := s.issued.Save(ctx, policy.ID.String(), wallet, cred); err != nil && s.logger != nil {
		// The wallet still gets its link; the worst case is one
		// extra mint on a repeat request.
		s.logger.WarnContext(ctx, "failed to record issued credential",
			"policy_id", policy.ID.String(), "error", err)
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionInviteIssued,
		PolicyID: policy.ID.String(),
		ChatID:   policy.ChatID,
		Wallet:   wallet,
	})
	return cred, false, nil
}

// GenerateLink mints an invite for a chat without a gate check. The
// HTTP surface calls this only after a successful validation.
func (s *Service) GenerateLink(ctx context.Context, chatID string) (invite.Credential, error) {
	ctx, span := s.tracer.Start(ctx, "issuance.GenerateLink",
		trace.WithAttributes(attribute.String("chat_id", chatID)))
	defer span.End()

	cred, err := s.mint(ctx, chatID)
	if err != nil {
		return invite.Credential{}, err
	}
	s.logAudit(ctx, audit.Event{
		Action: audit.ActionInviteIssued,
		ChatID: chatID,
	})
	return cred, nil
}

// TokenMetadata fetches display metadata for a token identifier.
func (s *Service) TokenMetadata(ctx context.Context, tokenID string) (ledger.TokenMetadata, models.Chain, error) {
	ctx, span := s.tracer.Start(ctx, "issuance.TokenMetadata")
	defer span.End()
	return s.resolver.Metadata(ctx, tokenID)
}

func (s *Service) lookupPolicy(ctx context.Context, policyID string) (*models.GatingPolicy, error) {
	id, err := uuid.Parse(policyID)
	if err != nil {
		// An unparseable identifier cannot match any policy, so it
		// reads the same as an unknown one to the caller.
		return nil, dErrors.New(dErrors.CodeNotFound, policyNotFoundMessage)
	}

	policy, err := s.policies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, policyNotFoundMessage)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy")
	}
	return policy, nil
}

func (s *Service) resolveBalance(ctx context.Context, policy *models.GatingPolicy, wallet string) (float64, error) {
	chain, err := policy.EffectiveChain()
	if err != nil {
		return 0, err
	}

	ctx, span := s.tracer.Start(ctx, "issuance.resolveBalance",
		trace.WithAttributes(attribute.String("chain", string(chain))))
	defer span.End()

	start := time.Now()
	balance, err := s.resolver.Resolve(ctx, chain, wallet, policy.TokenID)
	if s.metrics != nil {
		s.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnavailable) && s.metrics != nil {
			s.metrics.OracleFailures.Inc()
		}
		return 0, err
	}
	return balance, nil
}

func (s *Service) mint(ctx context.Context, chatID string) (invite.Credential, error) {
	start := time.Now()
	cred, err := s.issuer.Issue(ctx, chatID)
	if s.metrics != nil {
		s.metrics.IssueDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return invite.Credential{}, err
	}
	if s.metrics != nil {
		s.metrics.InvitesIssued.Inc()
	}
	return cred, nil
}

func (s *Service) denyGate(ctx context.Context, policy *models.GatingPolicy, wallet string, decision gate.Decision) {
	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionGateDenied,
		PolicyID: policy.ID.String(),
		ChatID:   policy.ChatID,
		Wallet:   wallet,
		Decision: "denied",
		Reason:   decision.Reason(),
	})
	if s.metrics != nil {
		s.metrics.GateDenied.Inc()
	}
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	event.RequestID = middleware.GetRequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"event", event.Action,
			"policy_id", event.PolicyID,
			"chat_id", event.ChatID,
			"wallet", event.Wallet,
			"request_id", event.RequestID,
			"log_type", "audit",
		)
	}
	if s.auditPublisher != nil {
		_ = s.auditPublisher.Emit(ctx, event)
	}
}
