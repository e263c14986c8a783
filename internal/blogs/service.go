package blogs

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
	ErrNotFound        = errors.New("blog not found")
	ErrSlugExists      = errors.New("slug already exists")
	ErrCommentNotFound = errors.New("comment not found")
)

const defaultAuthor = "Admin"

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

// Create stores a new post. author names the post when the request has none.
func (s *Service) Create(ctx context.Context, req CreateRequest, author string) (Blog, error) {
	item := Blog{
		ID:            primitive.NewObjectID().Hex(),
		Title:         strings.TrimSpace(req.Title),
		Slug:          req.Slug,
		Excerpt:       strings.TrimSpace(req.Excerpt),
		Content:       req.Content,
		FeaturedImage: strings.TrimSpace(req.FeaturedImage),
		Category:      strings.TrimSpace(req.Category),
		Tags:          req.Tags,
		Status:        strings.TrimSpace(req.Status),
		IsPublished:   req.IsPublished,
		IsFeatured:    req.IsFeatured,
		RelatedPosts:  req.RelatedPosts,
		Comments:      []Comment{},
	}
	if req.Author != nil {
		item.Author = *req.Author
	}
	if strings.TrimSpace(item.Author.Name) == "" {
		item.Author.Name = strings.TrimSpace(author)
	}
	if item.Author.Name == "" {
		item.Author.Name = defaultAuthor
	}
	if req.SEO != nil {
		item.SEO = *req.SEO
	}
	if item.Status == "" {
		item.Status = StatusDraft
	}

	now := s.clock()
	item.CreatedAt = now
	s.prepare(&item, nil, now)

	if err := s.val.Check(item); err != nil {
		return Blog{}, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Blog{}, ErrSlugExists
		}
		return Blog{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Blog, error) {
	prev, err := s.get(ctx, id)
	if err != nil {
		return Blog{}, err
	}

	item := prev
	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		item.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		item.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		item.Content = *req.Content
	}
	if req.FeaturedImage != nil {
		item.FeaturedImage = strings.TrimSpace(*req.FeaturedImage)
	}
	if req.Author != nil {
		item.Author = *req.Author
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
	}
	if req.Status != nil {
		item.Status = strings.TrimSpace(*req.Status)
	}
	if req.IsPublished != nil {
		item.IsPublished = *req.IsPublished
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}
	if req.SEO != nil {
		item.SEO = *req.SEO
	}
	if req.RelatedPosts != nil {
		item.RelatedPosts = *req.RelatedPosts
	}

	return s.save(ctx, item, &prev)
}

// Toggle flips isPublished and moves status with it. publishedAt is only
// ever set on the first publish.
func (s *Service) Toggle(ctx context.Context, id string) (Blog, error) {
	prev, err := s.get(ctx, id)
	if err != nil {
		return Blog{}, err
	}
	item := prev
	item.IsPublished = !prev.IsPublished
	if item.IsPublished {
		item.Status = StatusPublished
	} else {
		item.Status = StatusDraft
	}
	return s.save(ctx, item, &prev)
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Blog, query.Pagination, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	if !filter.VisibleOnly {
		return items, query.NewPagination(filter.Page, total), nil
	}
	for i := range items {
		items[i].Comments = approvedComments(items[i].Comments)
	}
	return items, query.NewPagination(filter.Page, total), nil
}

// Read is the single-post read path. Hidden posts look missing to
// unprivileged callers; a privileged preview neither gates nor counts.
// viewErr reports a failed view increment, which does not fail the read.
func (s *Service) Read(ctx context.Context, slugOrID string, privileged, preview bool) (item Blog, viewErr error, err error) {
	slugOrID = strings.TrimSpace(slugOrID)
	item, err = s.repo.GetBySlug(ctx, strings.ToLower(slugOrID))
	if errors.Is(err, mongo.ErrNoDocuments) && primitive.IsValidObjectID(slugOrID) {
		item, err = s.repo.GetByID(ctx, slugOrID)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Blog{}, nil, ErrNotFound
		}
		return Blog{}, nil, err
	}

	if privileged && preview {
		return item, nil, nil
	}
	if !item.Visible() {
		if !privileged {
			return Blog{}, nil, ErrNotFound
		}
		return item, nil, nil
	}
	if !privileged {
		item.Comments = approvedComments(item.Comments)
	}

	if err := s.repo.IncrementViews(ctx, item.ID); err != nil {
		return item, err, nil
	}
	item.Views++
	return item, nil, nil
}

// Like counts a like on a visible post; hidden posts look missing.
func (s *Service) Like(ctx context.Context, id string) (int64, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return 0, err
	}
	if !item.Visible() {
		return 0, ErrNotFound
	}
	likes, err := s.repo.IncrementLikes(ctx, item.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return likes, nil
}

// AddComment appends an unapproved comment to a visible post.
func (s *Service) AddComment(ctx context.Context, id string, req CommentRequest) (Comment, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return Comment{}, err
	}
	if !item.Visible() {
		return Comment{}, ErrNotFound
	}

	c := Comment{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.clock(),
	}
	if err := s.val.Check(c); err != nil {
		return Comment{}, err
	}
	if err := s.repo.AddComment(ctx, item.ID, c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Comment{}, ErrNotFound
		}
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) ApproveComment(ctx context.Context, id, commentID string) (Blog, error) {
	item, err := s.repo.ApproveComment(ctx, strings.TrimSpace(id), strings.TrimSpace(commentID), s.clock())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Blog{}, ErrCommentNotFound
		}
		return Blog{}, err
	}
	return item, nil
}

func (s *Service) get(ctx context.Context, id string) (Blog, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Blog{}, ErrNotFound
		}
		return Blog{}, err
	}
	return item, nil
}

func (s *Service) save(ctx context.Context, item Blog, prev *Blog) (Blog, error) {
	s.prepare(&item, prev, s.clock())
	if err := s.val.Check(item); err != nil {
		return Blog{}, err
	}
	if err := s.repo.Replace(ctx, item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Blog{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Blog{}, ErrSlugExists
		}
		return Blog{}, err
	}
	return item, nil
}

// prepare applies the save-time derivations. prev is nil on create.
func (s *Service) prepare(item *Blog, prev *Blog, now time.Time) {
	item.Slug = strings.ToLower(strings.TrimSpace(item.Slug))
	if item.Slug == "" && (prev == nil || prev.Title != item.Title) {
		item.Slug = slug.Blog(item.Title)
	}
	if prev == nil || prev.Content != item.Content {
		item.ReadTime = ReadTime(item.Content)
	}
	if item.Status == StatusPublished && item.IsPublished && item.PublishedAt == nil {
		t := now
		item.PublishedAt = &t
	}
	item.Tags = normalizeTags(item.Tags)
	item.UpdatedAt = now
}

// ReadTime is the estimated reading time in minutes. Content without words
// reads in zero minutes.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func approvedComments(comments []Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.IsApproved {
			out = append(out, c)
		}
	}
	return out
}
