package blogs

import (
	"context"
	"testing"
	"time"

	"agency-backend/internal/validation"
)

func TestReadTime(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"one", 1},
		{words(200), 1},
		{words(201), 2},
		{words(210), 2},
		{"<p>Hello</p>  <b>world</b>", 1},
	}
	for _, tc := range cases {
		if got := ReadTime(tc.content); got != tc.want {
			t.Fatalf("ReadTime(%d chars) = %d, want %d", len(tc.content), got, tc.want)
		}
	}
}

func TestUpdateKeepsSlugAndRecomputesReadTime(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, validation.New(), time.UTC)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Title: "First Title", Excerpt: "e", Content: "short", Category: "SEO", Tags: []string{" Go ", "", "SEO"},
	}, "Jane")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Author.Name != "Jane" {
		t.Fatalf("expected author from caller, got %q", created.Author.Name)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "go" || created.Tags[1] != "seo" {
		t.Fatalf("unexpected tags: %v", created.Tags)
	}

	title := "Second Title"
	content := words(450)
	updated, err := svc.Update(ctx, created.ID, UpdateRequest{Title: &title, Content: &content})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "first-title" {
		t.Fatalf("slug should not change once set, got %q", updated.Slug)
	}
	if updated.ReadTime != 3 {
		t.Fatalf("expected readTime 3, got %d", updated.ReadTime)
	}

	empty := ""
	updated, err = svc.Update(ctx, created.ID, UpdateRequest{Slug: &empty, Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "first-title" {
		t.Fatalf("unchanged title must not re-derive the slug, got %q", updated.Slug)
	}
}

func TestUpdatePublishSetsPublishedAtOnce(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, validation.New(), time.UTC)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Title: "T", Excerpt: "e", Content: "c", Category: "SEO"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status, on := StatusPublished, true
	first, err := svc.Update(ctx, created.ID, UpdateRequest{Status: &status, IsPublished: &on})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if first.PublishedAt == nil || !first.PublishedAt.Equal(clock) {
		t.Fatalf("expected publishedAt %v, got %v", clock, first.PublishedAt)
	}

	clock = clock.Add(48 * time.Hour)
	archived := StatusArchived
	if _, err := svc.Update(ctx, created.ID, UpdateRequest{Status: &archived}); err != nil {
		t.Fatalf("archive: %v", err)
	}
	again, err := svc.Update(ctx, created.ID, UpdateRequest{Status: &status})
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if !again.PublishedAt.Equal(clock.Add(-48 * time.Hour)) {
		t.Fatalf("publishedAt moved to %v", again.PublishedAt)
	}
}

func TestUpdateMissing(t *testing.T) {
	svc := NewService(newMemoryRepo(), validation.New(), time.UTC)
	title := "x"
	if _, err := svc.Update(context.Background(), "missing", UpdateRequest{Title: &title}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
