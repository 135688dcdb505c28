package service

import (
	"context"
	"strings"

	"agri-pos/internal/model"
	"agri-pos/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// contentCatalog is the snapshot surface the content service reads from.
type contentCatalog interface {
	Meta() model.Meta
	SeasonPests() []model.SeasonPest
	Articles() []model.Article
	Reload(ctx context.Context) error
}

// contentService implements ContentService: shop metadata, pest advisories
// and articles shown on the dashboard.
type contentService struct {
	store   store.ContentStore
	catalog contentCatalog
	logger  zerolog.Logger
}

// NewContentService creates a new content service.
func NewContentService(st store.ContentStore, catalog contentCatalog, logger zerolog.Logger) ContentService {
	return &contentService{
		store:   st,
		catalog: catalog,
		logger:  logger.With().Str("service", "content").Logger(),
	}
}

// Meta returns the shop-wide settings.
func (s *contentService) Meta() model.Meta {
	return s.catalog.Meta()
}

// SeasonPests returns the pest advisories.
func (s *contentService) SeasonPests() []model.SeasonPest {
	return s.catalog.SeasonPests()
}

// CreateSeasonPest persists a new pest advisory, then reloads.
func (s *contentService) CreateSeasonPest(ctx context.Context, pest *model.SeasonPest) error {
	if strings.TrimSpace(pest.Name) == "" {
		return model.MissingFieldError("name")
	}
	if pest.ID == "" {
		pest.ID = uuid.NewString()
	}
	now := model.Now()
	pest.CreatedAt = now
	pest.UpdatedAt = now

	if err := s.store.CreateSeasonPest(ctx, pest); err != nil {
		s.logger.Error().Err(err).Str("pest_id", pest.ID).Msg("failed to create pest advisory")
		return err
	}
	return s.catalog.Reload(ctx)
}

// UpdateSeasonPest overwrites a pest advisory, then reloads.
func (s *contentService) UpdateSeasonPest(ctx context.Context, pest *model.SeasonPest) error {
	if strings.TrimSpace(pest.Name) == "" {
		return model.MissingFieldError("name")
	}
	if !s.pestExists(pest.ID) {
		return model.NotFoundError("pest advisory")
	}
	pest.UpdatedAt = model.Now()

	if err := s.store.ReplaceSeasonPest(ctx, pest); err != nil {
		s.logger.Error().Err(err).Str("pest_id", pest.ID).Msg("failed to update pest advisory")
		return err
	}
	return s.catalog.Reload(ctx)
}

// DeleteSeasonPest removes a pest advisory, then reloads.
func (s *contentService) DeleteSeasonPest(ctx context.Context, id string) error {
	if !s.pestExists(id) {
		return model.NotFoundError("pest advisory")
	}
	if err := s.store.DeleteSeasonPest(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("pest_id", id).Msg("failed to delete pest advisory")
		return err
	}
	return s.catalog.Reload(ctx)
}

// Articles returns the advisory articles.
func (s *contentService) Articles() []model.Article {
	return s.catalog.Articles()
}

// CreateArticle persists a new article, then reloads.
func (s *contentService) CreateArticle(ctx context.Context, article *model.Article) error {
	if strings.TrimSpace(article.Title) == "" {
		return model.MissingFieldError("title")
	}
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	now := model.Now()
	article.CreatedAt = now
	article.UpdatedAt = now

	if err := s.store.CreateArticle(ctx, article); err != nil {
		s.logger.Error().Err(err).Str("article_id", article.ID).Msg("failed to create article")
		return err
	}
	return s.catalog.Reload(ctx)
}

// UpdateArticle overwrites an article, then reloads.
func (s *contentService) UpdateArticle(ctx context.Context, article *model.Article) error {
	if strings.TrimSpace(article.Title) == "" {
		return model.MissingFieldError("title")
	}
	if !s.articleExists(article.ID) {
		return model.NotFoundError("article")
	}
	article.UpdatedAt = model.Now()

	if err := s.store.ReplaceArticle(ctx, article); err != nil {
		s.logger.Error().Err(err).Str("article_id", article.ID).Msg("failed to update article")
		return err
	}
	return s.catalog.Reload(ctx)
}

// DeleteArticle removes an article, then reloads.
func (s *contentService) DeleteArticle(ctx context.Context, id string) error {
	if !s.articleExists(id) {
		return model.NotFoundError("article")
	}
	if err := s.store.DeleteArticle(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("article_id", id).Msg("failed to delete article")
		return err
	}
	return s.catalog.Reload(ctx)
}

func (s *contentService) pestExists(id string) bool {
	for _, p := range s.catalog.SeasonPests() {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *contentService) articleExists(id string) bool {
	for _, a := range s.catalog.Articles() {
		if a.ID == id {
			return true
		}
	}
	return false
}
