package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMonths   = 6
	maxMonths       = 24
	trendDays       = 30
	defaultActivity = 10
	maxActivity     = 50
	topN            = 5
)

type Service struct {
	source   Source
	location *time.Location
	now      func() time.Time
}

func NewService(source Source, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		source:   source,
		location: location,
		now:      time.Now,
	}
}

// GrowthRate is the percentage change from previous to current, rounded to
// one decimal. A zero previous period yields 100 when anything happened and
// 0 otherwise.
func GrowthRate(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round1(float64(current-previous) / float64(previous) * 100)
}

// Percentage is part/whole*100 rounded to one decimal; 0 for an empty whole.
func Percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FillMonths returns the last n calendar months ending with now's month,
// oldest first, with zero counts for months absent from buckets.
func FillMonths(now time.Time, n int, buckets []TimeBucket) []Point {
	counts := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		counts[fmt.Sprintf("%04d-%02d", b.Year, b.Month)] += b.Count
	}
	first := monthStart(now).AddDate(0, -(n - 1), 0)
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		out = append(out, Point{Period: key, Count: counts[key]})
	}
	return out
}

// FillDays is FillMonths for the last n days.
func FillDays(now time.Time, n int, buckets []TimeBucket) []Point {
	counts := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		counts[fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day)] += b.Count
	}
	first := dayStart(now).AddDate(0, 0, -(n - 1))
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		key := first.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, Point{Period: key, Count: counts[key]})
	}
	return out
}

func bucketCount(buckets []Bucket, key string) int64 {
	for _, b := range buckets {
		if b.Key == key {
			return b.Count
		}
	}
	return 0
}

// DashboardStats fans out every summary query; the first failure fails the
// whole call.
func (s *Service) DashboardStats(ctx context.Context) (Dashboard, error) {
	now := s.now().In(s.location)
	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, c Collection, filter bson.M) {
		g.Go(func() error {
			n, err := s.source.Count(ctx, c, filter)
			if err != nil {
				return fmt.Errorf("count %s: %w", c, err)
			}
			*dst = n
			return nil
		})
	}

	count(&d.Contacts.Total, Contacts, bson.M{})
	count(&d.Contacts.New, Contacts, bson.M{"status": "new"})
	count(&d.Contacts.ThisMonth, Contacts, bson.M{"createdAt": bson.M{"$gte": thisMonth}})
	count(&d.Contacts.LastMonth, Contacts, bson.M{"createdAt": bson.M{"$gte": lastMonth, "$lt": thisMonth}})
	g.Go(func() error {
		buckets, err := s.source.GroupCount(ctx, Contacts, bson.M{}, "status", false)
		if err != nil {
			return fmt.Errorf("contacts by status: %w", err)
		}
		d.Contacts.ByStatus = buckets
		return nil
	})

	count(&d.Services.Total, Services, bson.M{})
	count(&d.Services.Active, Services, bson.M{"isActive": true})
	count(&d.Services.Featured, Services, bson.M{"isFeatured": true})

	count(&d.Blogs.Total, Blogs, bson.M{})
	count(&d.Blogs.Published, Blogs, bson.M{"isPublished": true, "status": "published"})
	count(&d.Blogs.Drafts, Blogs, bson.M{"status": "draft"})
	g.Go(func() error {
		n, err := s.source.Sum(ctx, Blogs, bson.M{}, "views")
		if err != nil {
			return fmt.Errorf("blog views: %w", err)
		}
		d.Blogs.TotalViews = n
		return nil
	})

	count(&d.Testimonials.Total, Testimonials, bson.M{})
	count(&d.Testimonials.Published, Testimonials, bson.M{"isPublished": true})
	g.Go(func() error {
		avg, err := s.source.Average(ctx, Testimonials, bson.M{"isPublished": true}, "rating")
		if err != nil {
			return fmt.Errorf("average rating: %w", err)
		}
		d.Testimonials.AverageRating = round1(avg)
		return nil
	})

	count(&d.CaseStudies.Total, CaseStudies, bson.M{})
	count(&d.CaseStudies.Published, CaseStudies, bson.M{"isPublished": true})

	count(&d.Users.Total, Users, bson.M{})
	count(&d.Users.Active, Users, bson.M{"isActive": true})

	g.Go(func() error {
		events, err := s.source.Recent(ctx, Contacts, topN)
		if err != nil {
			return fmt.Errorf("recent contacts: %w", err)
		}
		d.RecentContacts = tag(events, "contact")
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d.Contacts.Growth = GrowthRate(d.Contacts.ThisMonth, d.Contacts.LastMonth)
	d.Contacts.ConversionRate = Percentage(bucketCount(d.Contacts.ByStatus, "converted"), d.Contacts.Total)
	return d, nil
}

// ContactAnalytics reports contact distributions over the last months
// calendar months (default 6, at most 24) plus a 30 day trend.
func (s *Service) ContactAnalytics(ctx context.Context, months int) (ContactReport, error) {
	if months <= 0 {
		months = defaultMonths
	}
	if months > maxMonths {
		months = maxMonths
	}
	now := s.now().In(s.location)
	since := monthStart(now).AddDate(0, -(months - 1), 0)
	window := bson.M{"createdAt": bson.M{"$gte": since}}

	rep := ContactReport{Months: months}
	var monthly, daily []TimeBucket
	var total int64

	g, ctx := errgroup.WithContext(ctx)
	group := func(dst *[]Bucket, field string, unwind bool) {
		g.Go(func() error {
			buckets, err := s.source.GroupCount(ctx, Contacts, window, field, unwind)
			if err != nil {
				return fmt.Errorf("contacts by %s: %w", field, err)
			}
			*dst = buckets
			return nil
		})
	}
	group(&rep.ByStatus, "status", false)
	group(&rep.ByPriority, "priority", false)
	group(&rep.BySource, "source", false)
	group(&rep.ByServiceInterest, "serviceInterest", true)
	group(&rep.ByBudget, "budget", false)
	g.Go(func() error {
		var err error
		monthly, err = s.source.Timeline(ctx, Contacts, since, false, s.location)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.source.Timeline(ctx, Contacts, dayStart(now).AddDate(0, 0, -(trendDays-1)), true, s.location)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.source.Count(ctx, Contacts, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return ContactReport{}, err
	}

	rep.Monthly = FillMonths(now, months, monthly)
	rep.Daily = FillDays(now, trendDays, daily)
	rep.ConversionRate = Percentage(bucketCount(rep.ByStatus, "converted"), total)
	return rep, nil
}

// Performance ranks published content by engagement.
func (s *Service) Performance(ctx context.Context) (PerformanceReport, error) {
	var rep PerformanceReport
	var ratings []Bucket

	publishedBlogs := bson.M{"isPublished": true, "status": "published"}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rep.TopBlogs, err = s.source.Top(ctx, Blogs, publishedBlogs, "views", topN)
		return err
	})
	g.Go(func() error {
		var err error
		rep.ViewsByCategory, err = s.source.GroupSum(ctx, Blogs, publishedBlogs, "category", "views")
		return err
	})
	g.Go(func() error {
		var err error
		rep.TopCaseStudies, err = s.source.Top(ctx, CaseStudies, bson.M{"isPublished": true}, "viewCount", topN)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.source.GroupCount(ctx, Testimonials, bson.M{"isPublished": true}, "rating", false)
		return err
	})
	g.Go(func() error {
		avg, err := s.source.Average(ctx, Testimonials, bson.M{"isPublished": true}, "rating")
		rep.AverageRating = round1(avg)
		return err
	})
	g.Go(func() error {
		var err error
		rep.TopServices, err = s.source.Top(ctx, Services, bson.M{"isActive": true}, "stats.completedProjects", topN)
		return err
	})
	if err := g.Wait(); err != nil {
		return PerformanceReport{}, err
	}

	rep.RatingDistribution = make([]Bucket, 0, 5)
	for r := 1; r <= 5; r++ {
		key := strconv.Itoa(r)
		rep.RatingDistribution = append(rep.RatingDistribution, Bucket{Key: key, Count: bucketCount(ratings, key)})
	}
	return rep, nil
}

var activityKinds = []struct {
	collection Collection
	kind       string
}{
	{Contacts, "contact"},
	{Blogs, "blog"},
	{Testimonials, "testimonial"},
	{CaseStudies, "caseStudy"},
}

// Activity merges the newest documents of each kind, newest first.
func (s *Service) Activity(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = defaultActivity
	}
	if limit > maxActivity {
		limit = maxActivity
	}

	results := make([][]Event, len(activityKinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, k := range activityKinds {
		g.Go(func() error {
			events, err := s.source.Recent(ctx, k.collection, limit)
			if err != nil {
				return fmt.Errorf("recent %s: %w", k.collection, err)
			}
			results[i] = tag(events, k.kind)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]Event, 0, limit*len(activityKinds))
	for _, events := range results {
		merged = append(merged, events...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func tag(events []Event, kind string) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		e.Type = kind
		out[i] = e
	}
	return out
}
