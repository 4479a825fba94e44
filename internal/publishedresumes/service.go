package publishedresumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/resumes"
	"career-backend/internal/shared/cache"
	"career-backend/internal/shared/util"
)

// publicCacheTTL bounds how stale a cached public view can get when an
// expiry passes without any write to invalidate it.
const publicCacheTTL = time.Minute

// PublishInput carries the optional knobs of a publish call.
type PublishInput struct {
	Slug            string     `json:"slug"`
	IsPublic        *bool      `json:"isPublic"`
	PublicExpiresAt *time.Time `json:"publicExpiresAt"`
}

// PublicView is the response shape of an unauthenticated slug read.
type PublicView struct {
	Slug        string         `json:"slug"`
	Version     int            `json:"version"`
	Resume      resumes.Resume `json:"resume"`
	PublishedAt time.Time      `json:"publishedAt"`
}

// StatusView decorates a stored row with its derived status for the
// owner-facing endpoints.
type StatusView struct {
	PublishedResume
	Status string `json:"status"`
}

// Service implements the publish lifecycle.
type Service struct {
	Repo    Repo
	Resumes resumes.Repo
	Cache   *cache.Cache
	Now     func() time.Time
}

// NewService constructs a Service. cache may be nil.
func NewService(repo Repo, resumeRepo resumes.Repo, c *cache.Cache) *Service {
	return &Service{Repo: repo, Resumes: resumeRepo, Cache: c, Now: time.Now}
}

// Publish upserts the single published projection of a source resume.
// The snapshot is sanitized at publish time; later edits to the source
// stay private until the next publish. Exactly one row per
// (user, source resume) pair survives concurrent calls.
func (s *Service) Publish(ctx context.Context, userID, sourceResumeID string, in PublishInput) (StatusView, error) {
	source, err := s.Resumes.GetByID(ctx, userID, sourceResumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return StatusView{}, ErrNotFound
		}
		return StatusView{}, err
	}

	existing, err := s.Repo.GetBySource(ctx, userID, sourceResumeID)
	exists := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return StatusView{}, err
	}

	slug, err := resolveSlug(in.Slug, existing.Slug, sourceResumeID, exists)
	if err != nil {
		return StatusView{}, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	published := PublishedResume{
		UserID:          userID,
		SourceResumeID:  sourceResumeID,
		Slug:            slug,
		Version:         1,
		IsPublic:        isPublic,
		PublicExpiresAt: in.PublicExpiresAt,
		Snapshot:        Sanitize(source),
	}

	if !exists {
		published.ID = uuid.NewString()
		err = s.Repo.Insert(ctx, published)
		if errors.Is(err, ErrConflict) {
			// Lost a first-publish race; the winner's row is the one to
			// update.
			err = s.Repo.Update(ctx, published)
		}
	} else {
		published.ID = existing.ID
		published.Version = existing.Version
		err = s.Repo.Update(ctx, published)
	}
	if err != nil {
		return StatusView{}, err
	}

	s.invalidate(ctx, existing.Slug, slug)

	stored, err := s.Repo.GetBySource(ctx, userID, sourceResumeID)
	if err != nil {
		return StatusView{}, err
	}
	return s.withStatus(stored), nil
}

// Unpublish soft-disables the published projection. The row is kept so
// a later publish reuses its slug and identity.
func (s *Service) Unpublish(ctx context.Context, userID, sourceResumeID string) (StatusView, error) {
	existing, err := s.Repo.GetBySource(ctx, userID, sourceResumeID)
	if err != nil {
		return StatusView{}, err
	}

	existing.IsPublic = false
	if err := s.Repo.Update(ctx, existing); err != nil {
		return StatusView{}, err
	}
	s.invalidate(ctx, existing.Slug)

	stored, err := s.Repo.GetBySource(ctx, userID, sourceResumeID)
	if err != nil {
		return StatusView{}, err
	}
	return s.withStatus(stored), nil
}

// GetBySource returns the owner's view of a published projection.
func (s *Service) GetBySource(ctx context.Context, userID, sourceResumeID string) (StatusView, error) {
	stored, err := s.Repo.GetBySource(ctx, userID, sourceResumeID)
	if err != nil {
		return StatusView{}, err
	}
	return s.withStatus(stored), nil
}

// List returns all of the owner's published projections.
func (s *Service) List(ctx context.Context, userID string) ([]StatusView, error) {
	rows, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]StatusView, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.withStatus(row))
	}
	return out, nil
}

// PublicBySlug serves the unauthenticated read. Anything other than an
// active row reads as not found; existence is never leaked.
func (s *Service) PublicBySlug(ctx context.Context, slug string) (PublicView, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return PublicView{}, ErrNotFound
	}

	key := publicCacheKey(slug)
	if raw, err := s.Cache.Get(ctx, key); err == nil {
		var view PublicView
		if err := json.Unmarshal(raw, &view); err == nil {
			return view, nil
		}
	}

	published, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return PublicView{}, err
	}
	if published.Status(s.Now()) != StatusActive {
		return PublicView{}, ErrNotFound
	}

	view := PublicView{
		Slug:        published.Slug,
		Version:     published.Version,
		Resume:      published.Snapshot,
		PublishedAt: published.UpdatedAt,
	}
	if ttl := cacheTTL(published.PublicExpiresAt, s.Now()); ttl > 0 {
		if raw, err := json.Marshal(view); err == nil {
			_ = s.Cache.Set(ctx, key, raw, ttl)
		}
	}
	return view, nil
}

// cacheTTL caps the cache lifetime at the remaining public window so a
// view is never served past its expiry.
func cacheTTL(expiresAt *time.Time, now time.Time) time.Duration {
	ttl := publicCacheTTL
	if expiresAt != nil {
		if remaining := expiresAt.Sub(now); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

func (s *Service) withStatus(published PublishedResume) StatusView {
	return StatusView{PublishedResume: published, Status: published.Status(s.Now())}
}

func (s *Service) invalidate(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug != "" {
			keys = append(keys, publicCacheKey(slug))
		}
	}
	_ = s.Cache.Delete(ctx, keys...)
}

func publicCacheKey(slug string) string {
	return "public_resume:" + slug
}

// resolveSlug applies the publish slug priority: an explicit request
// slug wins, then the existing row's slug, then the source resume id.
func resolveSlug(requested, existing, sourceResumeID string, exists bool) (string, error) {
	if requested = strings.TrimSpace(requested); requested != "" {
		slug := util.SanitizeSlug(requested)
		if slug == "" {
			return "", fmt.Errorf("%w: slug has no usable characters", ErrInvalidInput)
		}
		return slug, nil
	}
	if exists && existing != "" {
		return existing, nil
	}
	return util.SanitizeSlug(sourceResumeID), nil
}
