package dashboard

import (
	"context"

	"github.com/Young-Flame/PhotoYo/internal/domain/booking"
	"github.com/Young-Flame/PhotoYo/internal/domain/contact"
	"github.com/Young-Flame/PhotoYo/internal/domain/photo"
	"github.com/Young-Flame/PhotoYo/internal/domain/user"
	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
)

// AdminStats is the admin dashboard overview
type AdminStats struct {
	TotalUsers      int `json:"total_users"`
	TotalPhotos     int `json:"total_photos"`
	PendingBookings int `json:"pending_bookings"`
	TotalContacts   int `json:"total_contacts"`
	TotalComments   int `json:"total_comments"`
}

// UserStats is the personal dashboard overview
type UserStats struct {
	MyPhotos   int `json:"my_photos"`
	MyBookings int `json:"my_bookings"`
	TotalViews int `json:"total_views"`
}

// SiteStats are the public numbers shown on the landing page
type SiteStats struct {
	TotalPhotos       int `json:"total_photos"`
	TotalComments     int `json:"total_comments"`
	CompletedSessions int `json:"completed_sessions"`
}

// Service aggregates counters from the other domains
type Service struct {
	users    user.Repository
	photos   photo.Repository
	comments photo.CommentRepository
	bookings booking.Repository
	contacts contact.Repository
}

// NewService creates a new dashboard service
func NewService(users user.Repository, photos photo.Repository, comments photo.CommentRepository, bookings booking.Repository, contacts contact.Repository) *Service {
	return &Service{
		users:    users,
		photos:   photos,
		comments: comments,
		bookings: bookings,
		contacts: contacts,
	}
}

// AdminStats returns the studio-wide overview
func (s *Service) AdminStats(ctx context.Context) (*AdminStats, error) {
	regular, err := s.users.CountByRole(ctx, policy.RoleUser)
	if err != nil {
		return nil, err
	}
	admins, err := s.users.CountByRole(ctx, policy.RoleAdmin)
	if err != nil {
		return nil, err
	}
	photos, err := s.photos.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.bookings.CountByStatus(ctx, booking.StatusPending)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contacts.Count(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalUsers:      regular + admins,
		TotalPhotos:     photos,
		PendingBookings: pending,
		TotalContacts:   contacts,
		TotalComments:   comments,
	}, nil
}

// UserStats returns the actor's personal overview
func (s *Service) UserStats(ctx context.Context, actor *policy.Actor) (*UserStats, error) {
	photos, err := s.photos.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.CountByRequester(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	views, err := s.photos.SumViewsByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		MyPhotos:   len(photos),
		MyBookings: bookings,
		TotalViews: views,
	}, nil
}

// SiteStats returns the public landing page numbers
func (s *Service) SiteStats(ctx context.Context) (*SiteStats, error) {
	photos, err := s.photos.Count(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.Count(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.bookings.CountByStatus(ctx, booking.StatusCompleted)
	if err != nil {
		return nil, err
	}

	return &SiteStats{
		TotalPhotos:       photos,
		TotalComments:     comments,
		CompletedSessions: completed,
	}, nil
}
