package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/northside-portal/portal-api/internal/models"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
)

const hoofbeatCacheKey = "hoofbeat:frontpage"

type articleRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListLatestByTag(ctx context.Context, tag models.ArticleTag, limit int) ([]models.Article, error)
}

// HoofbeatService serves the school news feed.
type HoofbeatService struct {
	repo     articleRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewHoofbeatService constructs HoofbeatService.
func NewHoofbeatService(repo articleRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *HoofbeatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HoofbeatService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// FrontPage assembles the headline, trending and news sections.
func (s *HoofbeatService) FrontPage(ctx context.Context) (*models.HoofbeatFrontPage, error) {
	var cached models.HoofbeatFrontPage
	if hit, _ := s.cache.Get(ctx, hoofbeatCacheKey, &cached); hit {
		return &cached, nil
	}

	page := &models.HoofbeatFrontPage{}

	headlines, err := s.repo.ListLatestByTag(ctx, models.TagHeadline, 1)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load headline")
	}
	if len(headlines) > 0 {
		page.Headline = &headlines[0]
	}

	if page.Trending, err = s.repo.ListLatestByTag(ctx, models.TagTrending, 3); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trending articles")
	}
	if page.News, err = s.repo.ListLatestByTag(ctx, models.TagNews, 3); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load news articles")
	}

	_ = s.cache.Set(ctx, hoofbeatCacheKey, page, s.cacheTTL)
	return page, nil
}

// Article returns one story by slug.
func (s *HoofbeatService) Article(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Article not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load article")
	}
	return article, nil
}
