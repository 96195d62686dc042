package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tokengate/internal/invite"
	"tokengate/internal/issuance/service/mocks"
	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/sentinel"
)

const (
	testMint   = "So11111111111111111111111111111111111111112"
	testWallet = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
)

func testPolicy() *models.GatingPolicy {
	return &models.GatingPolicy{
		ID:                uuid.MustParse("0b9e2ab6-43c5-4d5e-9989-43e31041375b"),
		ChatID:            "-1001234",
		TokenID:           testMint,
		Chain:             models.ChainSolana,
		MinimumTokenCount: 100,
	}
}

func newService(t *testing.T) (*Service, *mocks.MockPolicyStore, *mocks.MockBalanceResolver, *mocks.MockInviteIssuer, *mocks.MockIssuedStore) {
	ctrl := gomock.NewController(t)
	policies := mocks.NewMockPolicyStore(ctrl)
	resolver := mocks.NewMockBalanceResolver(ctrl)
	issuer := mocks.NewMockInviteIssuer(ctrl)
	issued := mocks.NewMockIssuedStore(ctrl)
	svc := New(policies, resolver, issuer, issued)
	return svc, policies, resolver, issuer, issued
}

func TestService_ValidateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("passing balance returns chat and balance", func(t *testing.T) {
		svc, policies, resolver, _, _ := newService(t)
		p := testPolicy()

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).Return(150.0, nil)

		result, err := svc.ValidateToken(ctx, p.ID.String(), testWallet)
		require.NoError(t, err)
		assert.Equal(t, "-1001234", result.ChatID)
		assert.Equal(t, 150.0, result.TokenBalance)
	})

	t.Run("balance below minimum is rejected with the shortfall", func(t *testing.T) {
		svc, policies, resolver, _, _ := newService(t)
		p := testPolicy()

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).Return(50.0, nil)

		_, err := svc.ValidateToken(ctx, p.ID.String(), testWallet)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "Insufficient tokens. Minimum required: 100", dErrors.MessageOf(err))
	})

	t.Run("balance exactly at the minimum passes", func(t *testing.T) {
		svc, policies, resolver, _, _ := newService(t)
		p := testPolicy()

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).Return(100.0, nil)

		result, err := svc.ValidateToken(ctx, p.ID.String(), testWallet)
		require.NoError(t, err)
		assert.Equal(t, 100.0, result.TokenBalance)
	})

	t.Run("unknown policy reads as not found before any oracle call", func(t *testing.T) {
		svc, policies, _, _, _ := newService(t)
		id := uuid.New()

		policies.EXPECT().FindByID(gomock.Any(), id).Return(nil, sentinel.ErrNotFound)

		_, err := svc.ValidateToken(ctx, id.String(), testWallet)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Equal(t, "Token address not found in the database.", dErrors.MessageOf(err))
	})

	t.Run("malformed policy id reads the same as an unknown one", func(t *testing.T) {
		svc, _, _, _, _ := newService(t)

		_, err := svc.ValidateToken(ctx, "not-a-uuid", testWallet)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Equal(t, "Token address not found in the database.", dErrors.MessageOf(err))
	})

	t.Run("oracle outage surfaces as retryable, never as a denial", func(t *testing.T) {
		svc, policies, resolver, _, _ := newService(t)
		p := testPolicy()

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).
			Return(0.0, dErrors.New(dErrors.CodeUnavailable, "Ledger oracle is unavailable. Please try again later."))

		_, err := svc.ValidateToken(ctx, p.ID.String(), testWallet)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func TestService_RequestInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("first request mints and records a credential", func(t *testing.T) {
		svc, policies, resolver, issuer, issued := newService(t)
		p := testPolicy()
		cred := invite.Credential{ChatID: p.ChatID, URL: "https://t.me/+AbCdEfGh", ExpiresAt: time.Now().Add(time.Hour), MaxUses: 1}

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).Return(150.0, nil)
		issued.EXPECT().Find(gomock.Any(), p.ID.String(), testWallet).Return(invite.Credential{}, sentinel.ErrNotFound)
		issuer.EXPECT().Issue(gomock.Any(), p.ChatID).Return(cred, nil)
		issued.EXPECT().Save(gomock.Any(), p.ID.String(), testWallet, cred).Return(nil)

		got, reused, err := svc.RequestInvite(ctx, p.ID.String(), testWallet)
		require.NoError(t, err)
		assert.False(t, reused)
		assert.Equal(t, cred.URL, got.URL)
	})

	t.Run("repeat request reuses the live credential without minting", func(t *testing.T) {
		svc, policies, resolver, _, issued := newService(t)
		p := testPolicy()
		cred := invite.Credential{ChatID: p.ChatID, URL: "https://t.me/+AbCdEfGh", ExpiresAt: time.Now().Add(time.Hour), MaxUses: 1}

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).Return(150.0, nil)
		issued.EXPECT().Find(gomock.Any(), p.ID.String(), testWallet).Return(cred, nil)

		got, reused, err := svc.RequestInvite(ctx, p.ID.String(), testWallet)
		require.NoError(t, err)
		assert.True(t, reused)
		assert.Equal(t, cred.URL, got.URL)
	})

	t.Run("expired stored credential is replaced with a fresh mint", func(t *testing.T) {
		svc, policies, resolver, issuer, issued := newService(t)
		p := testPolicy()
		stale := invite.Credential{ChatID: p.ChatID, URL: "https://t.me/+Stale", ExpiresAt: time.Now().Add(-time.Minute), MaxUses: 1}
		fresh := invite.Credential{ChatID: p.ChatID, URL: "https://t.me/+Fresh", ExpiresAt: time.Now().Add(time.Hour), MaxUses: 1}

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).Return(150.0, nil)
		issued.EXPECT().Find(gomock.Any(), p.ID.String(), testWallet).Return(stale, nil)
		issuer.EXPECT().Issue(gomock.Any(), p.ChatID).Return(fresh, nil)
		issued.EXPECT().Save(gomock.Any(), p.ID.String(), testWallet, fresh).Return(nil)

		got, reused, err := svc.RequestInvite(ctx, p.ID.String(), testWallet)
		require.NoError(t, err)
		assert.False(t, reused)
		assert.Equal(t, "https://t.me/+Fresh", got.URL)
	})

	t.Run("denied wallet never reaches the issuer", func(t *testing.T) {
		svc, policies, resolver, _, _ := newService(t)
		p := testPolicy()

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).Return(50.0, nil)

		_, _, err := svc.RequestInvite(ctx, p.ID.String(), testWallet)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("oracle outage never reaches the issuer", func(t *testing.T) {
		svc, policies, resolver, _, _ := newService(t)
		p := testPolicy()

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).
			Return(0.0, dErrors.New(dErrors.CodeUnavailable, "Ledger oracle is unavailable. Please try again later."))

		_, _, err := svc.RequestInvite(ctx, p.ID.String(), testWallet)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	t.Run("a failed dedup save still returns the minted link", func(t *testing.T) {
		svc, policies, resolver, issuer, issued := newService(t)
		p := testPolicy()
		cred := invite.Credential{ChatID: p.ChatID, URL: "https://t.me/+AbCdEfGh", ExpiresAt: time.Now().Add(time.Hour), MaxUses: 1}

		policies.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		resolver.EXPECT().Resolve(gomock.Any(), models.ChainSolana, testWallet, testMint).Return(150.0, nil)
		issued.EXPECT().Find(gomock.Any(), p.ID.String(), testWallet).Return(invite.Credential{}, sentinel.ErrNotFound)
		issuer.EXPECT().Issue(gomock.Any(), p.ChatID).Return(cred, nil)
		issued.EXPECT().Save(gomock.Any(), p.ID.String(), testWallet, cred).Return(assert.AnError)

		got, _, err := svc.RequestInvite(ctx, p.ID.String(), testWallet)
		require.NoError(t, err)
		assert.Equal(t, cred.URL, got.URL)
	})
}

func TestService_GenerateLink(t *testing.T) {
	svc, _, _, issuer, _ := newService(t)
	cred := invite.Credential{ChatID: "-1001234", URL: "https://t.me/+AbCdEfGh", MaxUses: 1}

	issuer.EXPECT().Issue(gomock.Any(), "-1001234").Return(cred, nil)

	got, err := svc.GenerateLink(context.Background(), "-1001234")
	require.NoError(t, err)
	assert.Equal(t, cred.URL, got.URL)
}
