package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"agency-backend/internal/blogs"
	"agency-backend/internal/casestudies"
	"agency-backend/internal/config"
	"agency-backend/internal/db"
	"agency-backend/internal/logging"
	"agency-backend/internal/models"
	"agency-backend/internal/services"
	"agency-backend/internal/testimonials"
	"agency-backend/internal/users"
	"agency-backend/internal/validation"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
	withSample    bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the agency database",
	Long:  "Creates the first admin account and, optionally, sample content. Writes run one after another; a failure leaves earlier writes in place.",
	RunE:  runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&adminName, "admin-name", envOrDefault("ADMIN_NAME", "Admin"), "admin display name")
	rootCmd.Flags().StringVar(&adminEmail, "admin-email", os.Getenv("ADMIN_EMAIL"), "admin email (ADMIN_EMAIL)")
	rootCmd.Flags().StringVar(&adminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "admin password (ADMIN_PASSWORD)")
	rootCmd.Flags().BoolVar(&withSample, "sample", false, "insert sample services, case study, testimonial and blog post")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFile)

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		return fmt.Errorf("indexes: %w", err)
	}

	val := validation.New()
	loc := cfg.Location()

	if adminEmail == "" || adminPassword == "" {
		logger.Info("seed admin: email or password missing, skipping")
	} else {
		usersService := users.NewService(users.NewRepository(cols.Users), nil, val, loc)
		u, err := usersService.Create(ctx, users.CreateRequest{
			Name:     adminName,
			Email:    adminEmail,
			Password: adminPassword,
			Role:     models.UserRoleAdmin,
		})
		switch {
		case errors.Is(err, users.ErrEmailExists):
			logger.Info("seed admin: already exists, skipping", slog.String("email", adminEmail))
		case err != nil:
			return fmt.Errorf("seed admin: %w", err)
		default:
			logger.Info("seed admin: ok", slog.String("user_id", u.ID))
		}
	}

	if !withSample {
		logger.Info("seed completed")
		return nil
	}

	existing, err := cols.Services.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if existing > 0 {
		logger.Info("seed sample: services present, skipping", slog.Int64("count", existing))
		logger.Info("seed completed")
		return nil
	}

	if err := seedSample(ctx, logger, cols, val, loc); err != nil {
		return err
	}
	logger.Info("seed completed")
	return nil
}

func seedSample(ctx context.Context, logger *slog.Logger, cols *db.Collections, val *validation.Validator, loc *time.Location) error {
	catalog := services.NewCatalog(services.NewRepository(cols.Services), val, loc)
	for i, req := range sampleServices() {
		req.Order = i
		svc, err := catalog.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("seed service %q: %w", req.Title, err)
		}
		logger.Info("seed service: ok", slog.String("service_id", svc.ID))
	}

	studies := casestudies.NewService(casestudies.NewRepository(cols.CaseStudies), val, loc)
	study, err := studies.Create(ctx, casestudies.CreateRequest{
		Title:       "Tripling organic traffic for a regional retailer",
		Client:      casestudies.Client{Name: "Northwind Goods", Industry: "Retail"},
		Description: "Technical SEO overhaul and content program for a 40-store retailer.",
		Challenge:   "Thin category pages and a slow storefront buried the catalog below competitors.",
		Solution:    "Rebuilt category templates, fixed crawl budget issues and shipped a weekly content calendar.",
		Results: []casestudies.Result{
			{Metric: "Organic sessions", Value: "3.1x", Improvement: "+210%"},
			{Metric: "Page load", Value: "1.4s", Improvement: "-58%"},
		},
		Services:    []string{"SEO", "Content Marketing"},
		Duration:    "6 months",
		IsPublished: true,
		IsFeatured:  true,
	})
	if err != nil {
		return fmt.Errorf("seed case study: %w", err)
	}
	logger.Info("seed case study: ok", slog.String("case_study_id", study.ID))

	quotes := testimonials.NewService(testimonials.NewRepository(cols.Testimonials), val, loc)
	t, err := quotes.Create(ctx, testimonials.CreateRequest{
		Client:      testimonials.Client{Name: "Dana Whitfield", Position: "CMO", Company: "Northwind Goods"},
		Quote:       "They found the problems our last two agencies missed, then fixed them.",
		Rating:      5,
		Service:     "SEO",
		Project:     study.ID,
		IsPublished: true,
	})
	if err != nil {
		return fmt.Errorf("seed testimonial: %w", err)
	}
	logger.Info("seed testimonial: ok", slog.String("testimonial_id", t.ID))

	posts := blogs.NewService(blogs.NewRepository(cols.Blogs), val, loc)
	post, err := posts.Create(ctx, blogs.CreateRequest{
		Title:       "Five technical SEO fixes that pay off in a month",
		Excerpt:     "Quick wins we apply on every new engagement.",
		Content:     "Start with crawl errors. Then fix canonical tags, compress images, repair internal links and submit a clean sitemap.",
		Category:    "SEO",
		Tags:        []string{"seo", "technical"},
		Status:      blogs.StatusPublished,
		IsPublished: true,
	}, adminName)
	switch {
	case errors.Is(err, blogs.ErrSlugExists):
		logger.Info("seed blog: slug exists, skipping")
	case err != nil:
		return fmt.Errorf("seed blog: %w", err)
	default:
		logger.Info("seed blog: ok", slog.String("blog_id", post.ID))
	}
	return nil
}

func sampleServices() []services.CreateRequest {
	return []services.CreateRequest{
		{
			Title:       "Search Engine Optimization",
			Description: "Technical audits, on-page work and content strategy that compound over time.",
			Category:    "SEO",
			Features:    []string{"Technical audit", "Keyword research", "Monthly reporting"},
			Pricing:     &services.Pricing{StartingPrice: 1500, Currency: "USD", PricingModel: "monthly"},
			Stats:       &services.Stats{CompletedProjects: 120, ClientsSatisfied: 98},
			IsFeatured:  true,
		},
		{
			Title:       "Social Media Management",
			Description: "Channel strategy, publishing and community management.",
			Category:    "Social Media",
			Features:    []string{"Content calendar", "Community management"},
			Pricing:     &services.Pricing{StartingPrice: 900, Currency: "USD", PricingModel: "monthly"},
			Stats:       &services.Stats{CompletedProjects: 85, ClientsSatisfied: 80},
		},
		{
			Title:       "Web Development",
			Description: "Fast marketing sites and storefronts built for conversion.",
			Category:    "Web Development",
			Features:    []string{"Responsive design", "CMS integration"},
			Pricing:     &services.Pricing{StartingPrice: 5000, Currency: "USD", PricingModel: "project-based"},
			Stats:       &services.Stats{CompletedProjects: 60, ClientsSatisfied: 58},
		},
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
