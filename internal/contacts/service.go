package contacts

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

var ErrNotFound = errors.New("contact not found")

type Service struct {
	repo     Repository
	val      *validation.Validator
	location *time.Location
	now      func() time.Time
}

func NewService(repo Repository, val *validation.Validator, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		val:      val,
		location: location,
		now:      time.Now,
	}
}

func (s *Service) clock() time.Time {
	return s.now().In(s.location)
}

// Submit stores a contact-form submission with workflow defaults.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, from Submitter) (Contact, error) {
	now := s.clock()
	item := Contact{
		ID:              primitive.NewObjectID().Hex(),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		Company:         strings.TrimSpace(req.Company),
		Industry:        strings.TrimSpace(req.Industry),
		Designation:     strings.TrimSpace(req.Designation),
		Subject:         strings.TrimSpace(req.Subject),
		Message:         strings.TrimSpace(req.Message),
		ServiceInterest: req.ServiceInterest,
		Budget:          strings.TrimSpace(req.Budget),
		Timeline:        strings.TrimSpace(req.Timeline),
		Source:          strings.TrimSpace(req.Source),
		Status:          StatusNew,
		Priority:        PriorityMedium,
		IPAddress:       from.IPAddress,
		UserAgent:       from.UserAgent,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if item.Source == "" {
		item.Source = defaultSource
	}
	if item.ServiceInterest == nil {
		item.ServiceInterest = []string{}
	}

	if err := s.val.Check(item); err != nil {
		return Contact{}, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return Contact{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (Contact, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Contact, query.Pagination, error) {
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

// Update applies admin workflow changes. Moving to closed always stamps
// closedDate with the update time.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Contact, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return Contact{}, err
	}

	if req.Status != nil {
		item.Status = strings.TrimSpace(*req.Status)
	}
	if req.Priority != nil {
		item.Priority = strings.TrimSpace(*req.Priority)
	}
	if req.Notes != nil {
		item.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.AssignedTo != nil {
		item.AssignedTo = strings.TrimSpace(*req.AssignedTo)
	}
	if req.IsSpam != nil {
		item.IsSpam = *req.IsSpam
	}
	if req.FollowUpDate != nil {
		item.FollowUpDate = req.FollowUpDate
	}
	if req.ClosedDate != nil {
		item.ClosedDate = req.ClosedDate
	}

	now := s.clock()
	if req.Status != nil && item.Status == StatusClosed {
		closed := now
		item.ClosedDate = &closed
	}
	item.UpdatedAt = now

	if err := s.val.Check(item); err != nil {
		return Contact{}, err
	}
	if err := s.repo.Replace(ctx, item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
	}
	return item, nil
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
