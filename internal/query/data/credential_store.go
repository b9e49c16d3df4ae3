package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/geomashup/geofeed-backend/internal/pkg/redis"
	"github.com/geomashup/geofeed-backend/internal/query/biz"
	"github.com/geomashup/geofeed-backend/internal/query/types"
	"go.uber.org/zap"
)

const credentialKey = "geofeed:credential"

// RedisCredentialStore persists the single bearer credential slot. The
// whole record is replaced on save, so concurrent readers see either the
// old or the new credential, never a partial write.
type RedisCredentialStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisCredentialStore creates the redis-backed credential store
func NewRedisCredentialStore(client *redis.Client, log *logger.Logger) biz.CredentialRepo {
	if log == nil {
		log = logger.L()
	}
	return &RedisCredentialStore{client: client, logger: log}
}

// Load returns the persisted credential, or (nil, nil) when the slot was
// never written or cannot be parsed. Parse failures fall open to renewal.
func (s *RedisCredentialStore) Load(ctx context.Context) (*types.Credential, error) {
	data, err := s.client.Get(ctx, credentialKey)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}

	var cred types.Credential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		s.logger.Warn("unreadable credential slot, treating as absent", zap.Error(err))
		return nil, nil
	}

	return &cred, nil
}

// Save overwrites the credential slot. The redis expiry tracks the
// credential's own expiry so a dead token does not outlive its validity.
func (s *RedisCredentialStore) Save(ctx context.Context, cred *types.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	ttl := time.Until(cred.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}

	return s.client.Set(ctx, credentialKey, string(data), ttl)
}
