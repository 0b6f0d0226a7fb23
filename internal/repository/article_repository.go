package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/northside-portal/portal-api/internal/models"
)

// ArticleRepository handles persistence of Hoofbeat articles.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository constructs the repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = `id, slug, title, author, date, image, content, tag, created_at, updated_at`

// FindBySlug returns the article with the given slug.
func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE slug = $1`, articleColumns)
	var article models.Article
	if err := r.db.GetContext(ctx, &article, query, slug); err != nil {
		return nil, err
	}
	return &article, nil
}

// ListLatestByTag returns the newest articles carrying the tag.
func (r *ArticleRepository) ListLatestByTag(ctx context.Context, tag models.ArticleTag, limit int) ([]models.Article, error) {
	if limit <= 0 {
		limit = 3
	}
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE tag = $1 ORDER BY date DESC LIMIT $2`, articleColumns)
	var articles []models.Article
	if err := r.db.SelectContext(ctx, &articles, query, tag, limit); err != nil {
		return nil, fmt.Errorf("list articles by tag: %w", err)
	}
	return articles, nil
}
