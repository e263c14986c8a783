package casestudies

import (
	"context"
	"errors"
	"strings"
	"time"

	"agency-backend/internal/query"
	"agency-backend/internal/slug"
	"agency-backend/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("case study not found")
	ErrSlugExists = errors.New("slug already exists")
)

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

func (s *Service) Create(ctx context.Context, req CreateRequest) (CaseStudy, error) {
	now := time.Now().In(s.location)
	item := CaseStudy{
		ID:           primitive.NewObjectID().Hex(),
		Title:        strings.TrimSpace(req.Title),
		Client:       req.Client,
		Description:  strings.TrimSpace(req.Description),
		Challenge:    strings.TrimSpace(req.Challenge),
		Solution:     strings.TrimSpace(req.Solution),
		Results:      req.Results,
		Services:     req.Services,
		Technologies: req.Technologies,
		Duration:     strings.TrimSpace(req.Duration),
		Timeline:     req.Timeline,
		Images:       req.Images,
		Tags:         req.Tags,
		IsPublished:  req.IsPublished,
		IsFeatured:   req.IsFeatured,
		Order:        req.Order,
		CreatedAt:    now,
	}
	if req.SEO != nil {
		item.SEO = *req.SEO
	}
	if req.Testimonial != nil {
		item.Testimonial = *req.Testimonial
	}

	if err := s.prepare(&item, now); err != nil {
		return CaseStudy{}, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return CaseStudy{}, ErrSlugExists
		}
		return CaseStudy{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (CaseStudy, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return CaseStudy{}, err
	}

	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Client != nil {
		item.Client = *req.Client
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Challenge != nil {
		item.Challenge = strings.TrimSpace(*req.Challenge)
	}
	if req.Solution != nil {
		item.Solution = strings.TrimSpace(*req.Solution)
	}
	if req.Results != nil {
		item.Results = *req.Results
	}
	if req.Services != nil {
		item.Services = *req.Services
	}
	if req.Technologies != nil {
		item.Technologies = *req.Technologies
	}
	if req.Duration != nil {
		item.Duration = strings.TrimSpace(*req.Duration)
	}
	if req.Timeline != nil {
		item.Timeline = *req.Timeline
	}
	if req.Images != nil {
		item.Images = *req.Images
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
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
	if req.SEO != nil {
		item.SEO = *req.SEO
	}
	if req.Testimonial != nil {
		item.Testimonial = *req.Testimonial
	}

	return s.save(ctx, item)
}

func (s *Service) Toggle(ctx context.Context, id string) (CaseStudy, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return CaseStudy{}, err
	}
	item.IsPublished = !item.IsPublished
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]CaseStudy, query.Pagination, error) {
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

// Read resolves key as an id or an seo slug and counts the view.
// Unpublished case studies look missing to unprivileged callers. A failed
// view increment is reported in viewErr and does not fail the read.
func (s *Service) Read(ctx context.Context, key string, privileged bool) (item CaseStudy, viewErr error, err error) {
	key = strings.TrimSpace(key)
	if primitive.IsValidObjectID(key) {
		item, err = s.repo.GetByID(ctx, key)
	} else {
		err = mongo.ErrNoDocuments
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		item, err = s.repo.GetBySlug(ctx, key)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CaseStudy{}, nil, ErrNotFound
		}
		return CaseStudy{}, nil, err
	}
	if !item.IsPublished && !privileged {
		return CaseStudy{}, nil, ErrNotFound
	}

	if err := s.repo.IncrementViews(ctx, item.ID); err != nil {
		return item, err, nil
	}
	item.ViewCount++
	return item, nil, nil
}

func (s *Service) get(ctx context.Context, id string) (CaseStudy, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CaseStudy{}, ErrNotFound
		}
		return CaseStudy{}, err
	}
	return item, nil
}

func (s *Service) save(ctx context.Context, item CaseStudy) (CaseStudy, error) {
	if err := s.prepare(&item, time.Now().In(s.location)); err != nil {
		return CaseStudy{}, err
	}
	if err := s.repo.Replace(ctx, item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CaseStudy{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return CaseStudy{}, ErrSlugExists
		}
		return CaseStudy{}, err
	}
	return item, nil
}

// prepare fills seo.slug when missing and validates the result.
func (s *Service) prepare(item *CaseStudy, now time.Time) error {
	item.SEO.Slug = strings.TrimSpace(item.SEO.Slug)
	if item.SEO.Slug == "" {
		item.SEO.Slug = slug.CaseStudy(item.Title)
	}
	item.UpdatedAt = now
	return s.val.Check(*item)
}
