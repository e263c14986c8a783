package testimonials

import (
	"context"
	"errors"
	"strings"
	"time"

	"agency-backend/internal/query"
	"agency-backend/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("testimonial not found")

type Service struct {
	repo     Repository
	val      *validation.Validator
	location *time.Location
}

func NewService(repo Repository, val *validation.Validator, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		val:      val,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Testimonial, error) {
	now := time.Now().In(s.location)
	item := Testimonial{
		ID:                 primitive.NewObjectID().Hex(),
		Client:             req.Client,
		Quote:              strings.TrimSpace(req.Quote),
		Rating:             req.Rating,
		Service:            strings.TrimSpace(req.Service),
		Project:            strings.TrimSpace(req.Project),
		IsPublished:        req.IsPublished,
		IsFeatured:         req.IsFeatured,
		Order:              req.Order,
		Source:             strings.TrimSpace(req.Source),
		SourceURL:          strings.TrimSpace(req.SourceURL),
		VerificationStatus: VerificationPending,
		Tags:               req.Tags,
		CreatedAt:          now,
	}
	if err := s.prepare(&item, now); err != nil {
		return Testimonial{}, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return Testimonial{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Testimonial, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return Testimonial{}, err
	}

	if req.Client != nil {
		item.Client = *req.Client
	}
	if req.Quote != nil {
		item.Quote = strings.TrimSpace(*req.Quote)
	}
	if req.Rating != nil {
		item.Rating = *req.Rating
	}
	if req.Service != nil {
		item.Service = strings.TrimSpace(*req.Service)
	}
	if req.Project != nil {
		item.Project = strings.TrimSpace(*req.Project)
	}
	if req.IsPublished != nil {
		item.IsPublished = *req.IsPublished
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}
	if req.Order != nil {
		item.Order = *req.Order
	}
	if req.Source != nil {
		item.Source = strings.TrimSpace(*req.Source)
	}
	if req.SourceURL != nil {
		item.SourceURL = strings.TrimSpace(*req.SourceURL)
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
	}

	return s.save(ctx, item)
}

func (s *Service) Toggle(ctx context.Context, id string) (Testimonial, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return Testimonial{}, err
	}
	item.IsPublished = !item.IsPublished
	return s.save(ctx, item)
}

// Verify sets the verification status.
func (s *Service) Verify(ctx context.Context, id string, req VerifyRequest) (Testimonial, error) {
	req.Status = strings.TrimSpace(req.Status)
	if err := s.val.Check(req); err != nil {
		return Testimonial{}, err
	}
	item, err := s.get(ctx, id)
	if err != nil {
		return Testimonial{}, err
	}
	item.VerificationStatus = req.Status
	return s.save(ctx, item)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Testimonial, query.Pagination, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.NewPagination(filter.Page, total), nil
}

// Get hides unpublished testimonials from unprivileged callers.
func (s *Service) Get(ctx context.Context, id string, privileged bool) (Testimonial, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return Testimonial{}, err
	}
	if !item.IsPublished && !privileged {
		return Testimonial{}, ErrNotFound
	}
	return item, nil
}

func (s *Service) get(ctx context.Context, id string) (Testimonial, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Testimonial{}, ErrNotFound
		}
		return Testimonial{}, err
	}
	return item, nil
}

func (s *Service) save(ctx context.Context, item Testimonial) (Testimonial, error) {
	if err := s.prepare(&item, time.Now().In(s.location)); err != nil {
		return Testimonial{}, err
	}
	if err := s.repo.Replace(ctx, item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Testimonial{}, ErrNotFound
		}
		return Testimonial{}, err
	}
	return item, nil
}

func (s *Service) prepare(item *Testimonial, now time.Time) error {
	if item.Service == "" {
		item.Service = defaultService
	}
	if item.Source == "" {
		item.Source = defaultSource
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	item.UpdatedAt = now
	return s.val.Check(*item)
}
