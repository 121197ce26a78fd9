// Package service runs verifications end to end: cache lookup,
// pipeline execution, scoring, persistence.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/cache"
	"github.com/ppiankov/trustlens/internal/fetch"
	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/pipeline"
	"github.com/ppiankov/trustlens/internal/score"
	"github.com/ppiankov/trustlens/internal/store"
)

// Runner abstracts the pipeline for testing
type Runner interface {
	Run(ctx context.Context, text, url string, vertical model.Vertical, language string) model.RunResult
}

var _ Runner = (*pipeline.Pipeline)(nil)

// Service coordinates one verification per request. Cache and store
// are both optional; a nil cache disables result reuse and a nil store
// disables persistence.
type Service struct {
	pipeline Runner
	scorer   *score.Scorer
	cache    *cache.LayeredCache
	store    *store.Store
	fetcher  *fetch.Fetcher
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a verification service
func New(p Runner, c *cache.LayeredCache, s *store.Store, f *fetch.Fetcher, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		pipeline: p,
		scorer:   score.NewScorer(),
		cache:    c,
		store:    s,
		fetcher:  f,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// VerifyText verifies the given text and returns the complete result.
// Identical text served from cache keeps a fresh verification ID but
// reports Metadata.Cached.
func (s *Service) VerifyText(ctx context.Context, text, url string, vertical model.Vertical, language string) (*model.Verification, error) {
	start := s.now()
	id := newVerificationID()
	contentHash := cache.ContentHash(text)

	if cached := s.lookupCached(contentHash); cached != nil {
		cached.ID = id
		cached.Metadata.Cached = true
		s.logger.Info("verification served from cache",
			zap.String("verification_id", id),
			zap.String("content_hash", contentHash))
		return cached, nil
	}

	result := s.pipeline.Run(ctx, text, url, vertical, language)

	verification := &model.Verification{
		ID:        id,
		Status:    "completed",
		URL:       url,
		PageScore: s.scorer.PageScore(result.Claims),
		Summary:   s.scorer.Summarize(result.Claims),
		Claims:    result.Claims,
		Metadata: model.Metadata{
			ProcessingTimeMS: s.now().Sub(start).Milliseconds(),
			ModelsUsed:       result.ModelsUsed,
			SourcesChecked:   result.SourcesChecked,
		},
		ContentHash: contentHash,
		Errors:      result.Errors,
	}

	s.storeCached(contentHash, verification)
	s.persist(ctx, verification)

	s.logger.Info("verification completed",
		zap.String("verification_id", id),
		zap.Int("page_score", verification.PageScore),
		zap.Int("claims", len(verification.Claims)))

	return verification, nil
}

// VerifyURL fetches the page at url and verifies its readable text
func (s *Service) VerifyURL(ctx context.Context, url string, vertical model.Vertical, language string) (*model.Verification, error) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.VerifyText(ctx, page.Text, page.FinalURL, vertical, language)
}

// GetVerification loads a previously stored verification by ID
func (s *Service) GetVerification(ctx context.Context, id string) (*model.Verification, error) {
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	return s.store.GetVerification(ctx, id)
}

func (s *Service) lookupCached(contentHash string) *model.Verification {
	if s.cache == nil {
		return nil
	}
	data, found := s.cache.Get(cache.Key(contentHash))
	if !found {
		return nil
	}
	var v model.Verification
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn("corrupt cache entry dropped",
			zap.String("content_hash", contentHash), zap.Error(err))
		_ = s.cache.Delete(cache.Key(contentHash))
		return nil
	}
	return &v
}

func (s *Service) storeCached(contentHash string, v *model.Verification) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(cache.Key(contentHash), data, s.ttl); err != nil {
		s.logger.Warn("cache write failed", zap.Error(err))
	}
}

func (s *Service) persist(ctx context.Context, v *model.Verification) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveVerification(ctx, v); err != nil {
		s.logger.Warn("persist failed",
			zap.String("verification_id", v.ID), zap.Error(err))
	}
}

func newVerificationID() string {
	return "ver_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
