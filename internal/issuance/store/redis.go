package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tokengate/internal/invite"
	"tokengate/pkg/platform/sentinel"
)

const redisKeyPrefix = "tokengate:issued:"

// Redis stores issued credentials in Redis with a TTL, so deduplication
// survives restarts and is shared across instances.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed issued-credential store.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func redisKey(policyID, wallet string) string {
	return redisKeyPrefix + policyID + ":" + wallet
}

// Find returns the credential stored for the policy and wallet, or
// sentinel.ErrNotFound if the key is missing or expired.
func (r *Redis) Find(ctx context.Context, policyID, wallet string) (invite.Credential, error) {
	raw, err := r.client.Get(ctx, redisKey(policyID, wallet)).Bytes()
	if errors.Is(err, redis.Nil) {
		return invite.Credential{}, sentinel.ErrNotFound
	}
	if err != nil {
		return invite.Credential{}, fmt.Errorf("get issued credential: %w", err)
	}

	var cred invite.Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return invite.Credential{}, fmt.Errorf("decode issued credential: %w", err)
	}
	return cred, nil
}

// Save records the credential under the policy and wallet key with the
// store's TTL.
func (r *Redis) Save(ctx context.Context, policyID, wallet string, cred invite.Credential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode issued credential: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(policyID, wallet), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save issued credential: %w", err)
	}
	return nil
}
