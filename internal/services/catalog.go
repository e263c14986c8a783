package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agency-backend/internal/query"
	"agency-backend/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("service not found")

// Catalog holds the business rules for the service offering.
type Catalog struct {
	repo     Repository
	val      *validation.Validator
	location *time.Location
}

func NewCatalog(repo Repository, val *validation.Validator, location *time.Location) *Catalog {
	return &Catalog{
		repo:     repo,
		val:      val,
		location: location,
	}
}

func (c *Catalog) Create(ctx context.Context, req CreateRequest) (Service, error) {
	now := time.Now().In(c.location)
	item := Service{
		ID:                  primitive.NewObjectID().Hex(),
		Title:               strings.TrimSpace(req.Title),
		Description:         strings.TrimSpace(req.Description),
		DetailedDescription: strings.TrimSpace(req.DetailedDescription),
		Icon:                strings.TrimSpace(req.Icon),
		Category:            strings.TrimSpace(req.Category),
		Features:            req.Features,
		Technologies:        req.Technologies,
		IsActive:            true,
		IsFeatured:          req.IsFeatured,
		Order:               req.Order,
		CreatedAt:           now,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.Pricing != nil {
		item.Pricing = *req.Pricing
	}
	if req.Stats != nil {
		item.Stats = *req.Stats
	}
	if req.SEO != nil {
		item.SEO = *req.SEO
	}

	if err := c.prepare(&item, now); err != nil {
		return Service{}, err
	}
	if err := c.repo.Create(ctx, item); err != nil {
		return Service{}, err
	}
	return item, nil
}

func (c *Catalog) Update(ctx context.Context, id string, req UpdateRequest) (Service, error) {
	item, err := c.get(ctx, id)
	if err != nil {
		return Service{}, err
	}

	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.DetailedDescription != nil {
		item.DetailedDescription = strings.TrimSpace(*req.DetailedDescription)
	}
	if req.Icon != nil {
		item.Icon = strings.TrimSpace(*req.Icon)
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Features != nil {
		item.Features = *req.Features
	}
	if req.Pricing != nil {
		item.Pricing = *req.Pricing
	}
	if req.Stats != nil {
		item.Stats = *req.Stats
	}
	if req.Technologies != nil {
		item.Technologies = *req.Technologies
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
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

	return c.save(ctx, item)
}

// Toggle flips isActive.
func (c *Catalog) Toggle(ctx context.Context, id string) (Service, error) {
	item, err := c.get(ctx, id)
	if err != nil {
		return Service{}, err
	}
	item.IsActive = !item.IsActive
	return c.save(ctx, item)
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	deleted, err := c.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (c *Catalog) List(ctx context.Context, filter ListFilter) ([]Service, query.Pagination, error) {
	items, err := c.repo.List(ctx, filter)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	total, err := c.repo.Count(ctx, filter)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.NewPagination(filter.Page, total), nil
}

// Get hides inactive services from unprivileged callers.
func (c *Catalog) Get(ctx context.Context, id string, privileged bool) (Service, error) {
	item, err := c.get(ctx, id)
	if err != nil {
		return Service{}, err
	}
	if !item.IsActive && !privileged {
		return Service{}, ErrNotFound
	}
	return item, nil
}

// Reorder writes each position in turn. Writes before a failure are kept.
func (c *Catalog) Reorder(ctx context.Context, positions []Position) error {
	if len(positions) == 0 {
		return validation.NewError("items", "items is required")
	}
	for i, p := range positions {
		if err := c.val.Check(p); err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				for j := range verr.Fields {
					verr.Fields[j].Field = fmt.Sprintf("[%d].%s", i, verr.Fields[j].Field)
				}
			}
			return err
		}
	}

	now := time.Now().In(c.location)
	for _, p := range positions {
		if err := c.repo.SetOrder(ctx, strings.TrimSpace(p.ID), p.Order, now); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

func (c *Catalog) get(ctx context.Context, id string) (Service, error) {
	item, err := c.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}
	return item, nil
}

func (c *Catalog) save(ctx context.Context, item Service) (Service, error) {
	if err := c.prepare(&item, time.Now().In(c.location)); err != nil {
		return Service{}, err
	}
	if err := c.repo.Replace(ctx, item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}
	return item, nil
}

func (c *Catalog) prepare(item *Service, now time.Time) error {
	item.Pricing.Currency = strings.ToUpper(strings.TrimSpace(item.Pricing.Currency))
	if item.Pricing.Currency == "" {
		item.Pricing.Currency = defaultCurrency
	}
	if item.Features == nil {
		item.Features = []string{}
	}
	if item.Technologies == nil {
		item.Technologies = []string{}
	}
	item.UpdatedAt = now
	return c.val.Check(*item)
}
