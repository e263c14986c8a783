package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"agency-backend/internal/adminstate"
	"agency-backend/internal/client"

	"github.com/spf13/cobra"
)

var (
	watch    bool
	interval time.Duration
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		store := adminstate.NewStore(adminstate.State{})
		out := cmd.OutOrStdout()
		store.Subscribe(func(s adminstate.State) {
			if !s.Loading {
				render(out, s)
			}
		})

		if !watch {
			return refresh(cmd.Context(), c, store)
		}
		if interval < time.Second {
			interval = time.Second
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if err := refresh(cmd.Context(), c, store); err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
					return err
				}
			}
			select {
			case <-cmd.Context().Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	dashboardCmd.Flags().BoolVarP(&watch, "watch", "w", false, "refresh until interrupted")
	dashboardCmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "refresh interval with --watch")
}

func refresh(ctx context.Context, c *client.Client, store *adminstate.Store) error {
	store.Dispatch(adminstate.SetLoading{Loading: true})
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	stats, err := c.Dashboard.Stats(ctx)
	if err != nil {
		store.Dispatch(adminstate.SetError{Err: err})
		return err
	}
	store.Dispatch(adminstate.DashboardLoaded{Stats: stats, At: time.Now()})
	return nil
}

func render(w io.Writer, s adminstate.State) {
	if s.Error != "" {
		fmt.Fprintf(w, "refresh failed: %s\n", s.Error)
		return
	}
	if s.Dashboard == nil {
		return
	}
	d := s.Dashboard
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "updated\t%s\n", s.UpdatedAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "contacts\t%d total\t%d new\t%d this month\t%+.1f%% growth\t%.1f%% converted\n",
		d.Contacts.Total, d.Contacts.New, d.Contacts.ThisMonth, d.Contacts.Growth, d.Contacts.ConversionRate)
	fmt.Fprintf(tw, "blogs\t%d total\t%d published\t%d drafts\t%d views\n",
		d.Blogs.Total, d.Blogs.Published, d.Blogs.Drafts, d.Blogs.TotalViews)
	fmt.Fprintf(tw, "services\t%d total\t%d active\t%d featured\n",
		d.Services.Total, d.Services.Active, d.Services.Featured)
	fmt.Fprintf(tw, "testimonials\t%d total\t%d published\t%.1f avg rating\n",
		d.Testimonials.Total, d.Testimonials.Published, d.Testimonials.AverageRating)
	fmt.Fprintf(tw, "case studies\t%d total\t%d published\n", d.CaseStudies.Total, d.CaseStudies.Published)
	fmt.Fprintf(tw, "users\t%d total\t%d active\n", d.Users.Total, d.Users.Active)
	for _, e := range d.RecentContacts {
		fmt.Fprintf(tw, "  recent\t%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Title, e.Status)
	}
	_ = tw.Flush()
}
