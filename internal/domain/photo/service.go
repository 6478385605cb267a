package photo

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/pkg/imaging"
	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
	"github.com/Young-Flame/PhotoYo/internal/pkg/storage"
)

// FeaturedCount is how many top-viewed photos the featured gallery shows.
const FeaturedCount = 6

// DefaultCategory is assigned when an upload omits the category.
const DefaultCategory = "general"

// Service handles photo business logic
type Service struct {
	photos    Repository
	comments  CommentRepository
	store     storage.Storage
	processor *imaging.Processor
	maxUpload int64
}

// NewService creates a new photo service
func NewService(photos Repository, comments CommentRepository, store storage.Storage, processor *imaging.Processor, maxUpload int64) *Service {
	return &Service{
		photos:    photos,
		comments:  comments,
		store:     store,
		processor: processor,
		maxUpload: maxUpload,
	}
}

// Upload validates the file, stores the original plus a thumbnail and
// persists the photo record. Thumbnail failures are logged and skipped; the
// photo is still published with the original only.
func (s *Service) Upload(ctx context.Context, actor *policy.Actor, req *UploadRequest, file io.Reader, filename string) (*PhotoResponse, error) {
	data, err := storage.ValidateUpload(file, filename, s.maxUpload)
	if err != nil {
		return nil, err
	}

	key := storage.GenerateKey(filename)
	contentType := storage.ContentTypeForExt(filename)

	if err := s.store.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	thumbKey := ""
	if thumb, err := s.processor.Thumbnail(data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Thumbnail generation failed, keeping original only")
	} else {
		tk := storage.ThumbKey(key)
		if err := s.store.Save(ctx, tk, bytes.NewReader(thumb), contentType); err != nil {
			log.Warn().Err(err).Str("key", tk).Msg("Failed to store thumbnail")
		} else {
			thumbKey = tk
		}
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DefaultCategory
	}

	p := &Photo{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Filename:    key,
		OwnerID:     actor.ID,
	}
	if thumbKey != "" {
		p.ThumbFilename = sql.NullString{String: thumbKey, Valid: true}
	}

	if err := s.photos.Create(ctx, p); err != nil {
		s.cleanupFiles(ctx, key, thumbKey)
		return nil, err
	}

	log.Info().Int64("photo_id", p.ID).Int64("owner_id", actor.ID).Msg("Photo uploaded")

	resp := s.toResponse(p)
	return &resp, nil
}

// GetDetail returns the photo with its comments after bumping the view
// counter. Every call counts as a view.
func (s *Service) GetDetail(ctx context.Context, id int64) (*DetailResponse, error) {
	p, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPhotoNotFound
	}

	views, err := s.photos.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Views = views

	comments, err := s.comments.ListByPhoto(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DetailResponse{
		Photo:    s.toResponse(p),
		Comments: comments,
	}, nil
}

// List returns photos newest first, optionally filtered by category
func (s *Service) List(ctx context.Context, category string) ([]PhotoResponse, error) {
	photos, err := s.photos.List(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.toResponses(photos), nil
}

// Featured returns the six most viewed photos
func (s *Service) Featured(ctx context.Context) ([]PhotoResponse, error) {
	photos, err := s.photos.TopByViews(ctx, FeaturedCount)
	if err != nil {
		return nil, err
	}
	return s.toResponses(photos), nil
}

// Update edits metadata; only the owner or an admin may edit
func (s *Service) Update(ctx context.Context, actor *policy.Actor, id int64, req *UpdateRequest) (*PhotoResponse, error) {
	p, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPhotoNotFound
	}

	if !policy.CanMutatePhoto(actor, p.OwnerID) {
		return nil, ErrNotOwner
	}

	p.Title = strings.TrimSpace(req.Title)
	p.Description = strings.TrimSpace(req.Description)
	if category := strings.TrimSpace(req.Category); category != "" {
		p.Category = category
	}

	if err := s.photos.Update(ctx, p); err != nil {
		return nil, err
	}

	resp := s.toResponse(p)
	return &resp, nil
}

// Delete removes the photo record and then its files. File cleanup is
// best-effort: a failed removal is logged, never surfaced.
func (s *Service) Delete(ctx context.Context, actor *policy.Actor, id int64) error {
	p, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPhotoNotFound
	}

	if !policy.CanMutatePhoto(actor, p.OwnerID) {
		return ErrNotOwner
	}

	if err := s.photos.Delete(ctx, id); err != nil {
		return err
	}

	thumb := ""
	if p.ThumbFilename.Valid {
		thumb = p.ThumbFilename.String
	}
	s.cleanupFiles(ctx, p.Filename, thumb)

	log.Info().Int64("photo_id", id).Int64("actor_id", actor.ID).Msg("Photo deleted")

	return nil
}

// Like bumps the like counter and returns its new value. Repeat likes from
// the same account all count.
func (s *Service) Like(ctx context.Context, id int64) (*LikeResponse, error) {
	likes, err := s.photos.IncrementLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &LikeResponse{Likes: likes}, nil
}

// AddComment attaches a comment to an existing photo
func (s *Service) AddComment(ctx context.Context, actor *policy.Actor, photoID int64, req *CommentRequest) (*Comment, error) {
	p, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPhotoNotFound
	}

	c := &Comment{
		PhotoID:    photoID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Content:    strings.TrimSpace(req.Content),
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) cleanupFiles(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to remove stored file")
		}
	}
}

func (s *Service) toResponse(p *Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		URL:         s.store.GetURL(p.Filename),
		OwnerID:     p.OwnerID,
		Views:       p.Views,
		Likes:       p.Likes,
		CreatedAt:   p.CreatedAt,
	}
	if p.ThumbFilename.Valid && p.ThumbFilename.String != "" {
		resp.ThumbURL = s.store.GetURL(p.ThumbFilename.String)
	}
	return resp
}

func (s *Service) toResponses(photos []*Photo) []PhotoResponse {
	out := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, s.toResponse(p))
	}
	return out
}
