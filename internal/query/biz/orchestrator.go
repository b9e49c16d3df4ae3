package biz

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/geomashup/geofeed-backend/internal/pkg/errors"
	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/geomashup/geofeed-backend/internal/pkg/workerpool"
	"github.com/geomashup/geofeed-backend/internal/query/types"
	"go.uber.org/zap"
)

// ResultCacheRepo stores result sets keyed by normalized search key.
// Get returns (nil, nil) when the slot was never written or is unreadable;
// freshness is the caller's concern. Put must ignore empty item sets.
type ResultCacheRepo interface {
	Get(ctx context.Context, key string) (*types.CachedResult, error)
	Put(ctx context.Context, result *types.CachedResult) error
}

// CredentialRepo owns the single durable credential slot. Load returns
// (nil, nil) when no credential was ever saved or the slot is unreadable.
type CredentialRepo interface {
	Load(ctx context.Context) (*types.Credential, error)
	Save(ctx context.Context, cred *types.Credential) error
}

// ErrImageNotFound indicates that no image is stored for a location key.
var ErrImageNotFound = stderrors.New("image not found")

// ImageStore is the map image cache index: binary membership plus a write
// path and a read path, keyed by location key. Concurrent writers for the
// same key race last-write-wins, which is acceptable because content for a
// given key is stable. Get returns ErrImageNotFound for an empty slot.
type ImageStore interface {
	Has(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, int64, error)
}

// CredentialProvider exchanges fixed application secrets for a fresh
// bearer credential.
type CredentialProvider interface {
	Exchange(ctx context.Context) (*types.Credential, error)
}

// SearchProvider runs a structured query under a bearer token.
type SearchProvider interface {
	Search(ctx context.Context, accessToken, query string) ([]types.Post, error)
}

// ImageProvider fetches one static map image for a location key.
type ImageProvider interface {
	Fetch(ctx context.Context, locationKey string) (data []byte, contentType string, err error)
}

// QueryResult is the renderer handoff: the full item list plus the ordered
// distinct location keys whose image slots are now settled (present or
// known-absent).
type QueryResult struct {
	Items     []types.Post
	Locations []string
	CacheHit  bool
}

// QueryUseCase orchestrates one search request: result cache lookup,
// credential lifecycle, provider search, and the map image fan-out.
type QueryUseCase struct {
	results     ResultCacheRepo
	credentials CredentialRepo
	images      ImageStore

	credProvider   CredentialProvider
	searchProvider SearchProvider
	imageProvider  ImageProvider

	pool   *workerpool.Pool
	ttl    time.Duration
	logger *logger.Logger
	now    func() time.Time
}

// NewQueryUseCase wires the orchestrator
func NewQueryUseCase(
	results ResultCacheRepo,
	credentials CredentialRepo,
	images ImageStore,
	credProvider CredentialProvider,
	searchProvider SearchProvider,
	imageProvider ImageProvider,
	pool *workerpool.Pool,
	resultTTL time.Duration,
	log *logger.Logger,
) *QueryUseCase {
	if log == nil {
		log = logger.L()
	}
	return &QueryUseCase{
		results:        results,
		credentials:    credentials,
		images:         images,
		credProvider:   credProvider,
		searchProvider: searchProvider,
		imageProvider:  imageProvider,
		pool:           pool,
		ttl:            resultTTL,
		logger:         log,
		now:            time.Now,
	}
}

// Query runs the full pipeline for one validated request. Validation and
// provider failures are terminal; cache write and per-image failures are
// absorbed. Query returns only after every needed image fetch has
// completed, successfully or not.
func (uc *QueryUseCase) Query(ctx context.Context, in *types.QueryInput) (*QueryResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	key := in.CacheKey()

	items, cacheHit := uc.lookupCached(ctx, key)
	if !cacheHit {
		fetched, err := uc.fetchFromProvider(ctx, in, key)
		if err != nil {
			return nil, err
		}
		items = fetched
	}

	locations := types.DistinctLocationKeys(items)
	uc.resolveImages(ctx, locations)

	return &QueryResult{Items: items, Locations: locations, CacheHit: cacheHit}, nil
}

// lookupCached returns the cached item set when present and fresh. A read
// error counts as a miss: the entry will simply be refetched.
func (uc *QueryUseCase) lookupCached(ctx context.Context, key string) ([]types.Post, bool) {
	cached, err := uc.results.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("result cache read failed, treating as miss",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if cached == nil {
		return nil, false
	}
	if !cached.Fresh(uc.now(), uc.ttl) {
		uc.logger.Debug("cached result expired", zap.String("key", key),
			zap.Time("fetched_at", cached.FetchedAt))
		return nil, false
	}
	return cached.Items, true
}

// fetchFromProvider runs the credential check/renewal, the provider search,
// and the best-effort cache write.
func (uc *QueryUseCase) fetchFromProvider(ctx context.Context, in *types.QueryInput, key string) ([]types.Post, error) {
	cred := uc.currentCredential(ctx)
	if cred == nil {
		fresh, err := uc.credProvider.Exchange(ctx)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrQueryCredential)
		}
		// A save failure must not fail the request: the credential just
		// obtained is still usable in memory.
		if err := uc.credentials.Save(ctx, fresh); err != nil {
			uc.logger.Warn("failed to persist credential", zap.Error(err))
		}
		cred = fresh
	}

	query := in.ProviderQuery()
	items, err := uc.searchProvider.Search(ctx, cred.AccessToken, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrQuerySearchProvider)
	}

	if len(items) > 0 {
		result := &types.CachedResult{Key: key, Items: items, FetchedAt: uc.now()}
		if err := uc.results.Put(ctx, result); err != nil {
			uc.logger.Warn("failed to cache search results",
				zap.String("key", key), zap.Error(err))
		}
	}

	return items, nil
}

// currentCredential loads the persisted credential if one exists and is
// still valid; any load failure falls open to renewal.
func (uc *QueryUseCase) currentCredential(ctx context.Context) *types.Credential {
	cred, err := uc.credentials.Load(ctx)
	if err != nil {
		uc.logger.Warn("credential load failed, renewing", zap.Error(err))
		return nil
	}
	if !cred.Valid(uc.now()) {
		return nil
	}
	return cred
}

// resolveImages partitions the location keys into cached and needed, then
// fetches every needed image concurrently and waits for all of them.
// Individual failures leave that slot unpopulated and are not surfaced.
func (uc *QueryUseCase) resolveImages(ctx context.Context, locations []string) {
	var needed []string
	for _, key := range locations {
		ok, err := uc.images.Has(ctx, key)
		if err != nil {
			uc.logger.Warn("image membership check failed, refetching",
				zap.String("location", key), zap.Error(err))
			ok = false
		}
		if !ok {
			needed = append(needed, key)
		}
	}

	if len(needed) == 0 {
		return
	}

	group := newFetchGroup(uc.pool)
	for _, key := range needed {
		key := key
		group.Go(func() {
			uc.fetchImage(ctx, key)
		})
	}
	group.Wait()
}

func (uc *QueryUseCase) fetchImage(ctx context.Context, key string) {
	data, contentType, err := uc.imageProvider.Fetch(ctx, key)
	if err != nil {
		uc.logger.Warn("map image fetch failed",
			zap.String("location", key), zap.Error(err))
		return
	}
	if err := uc.images.Put(ctx, key, data, contentType); err != nil {
		uc.logger.Warn("map image store failed",
			zap.String("location", key), zap.Error(err))
	}
}
