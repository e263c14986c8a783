package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"agency-backend/internal/client"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	listParams    []string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the token",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		res, err := c.Auth.Login(ctx, loginEmail, loginPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", res.User.Email, res.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		return c.Auth.Logout()
	},
}

var listCmd = &cobra.Command{
	Use:       "list <resource>",
	Short:     "List a resource as JSON",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"blogs", "case-studies", "services", "testimonials", "contacts", "users"},
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseParams(listParams)
		if err != nil {
			return err
		}
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		var items interface{}
		var page client.Page
		switch args[0] {
		case "blogs":
			items, page, err = c.Blogs.List(ctx, params)
		case "case-studies":
			items, page, err = c.CaseStudies.List(ctx, params)
		case "services":
			items, page, err = c.Services.List(ctx, params)
		case "testimonials":
			items, page, err = c.Testimonials.List(ctx, params)
		case "contacts":
			items, page, err = c.Contacts.List(ctx, params)
		case "users":
			items, page, err = c.Users.List(ctx, params)
		default:
			return fmt.Errorf("unknown resource %q", args[0])
		}
		if err != nil {
			return err
		}
		if err := writeJSON(cmd.OutOrStdout(), items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d (page %d/%d)\n", page.Count, page.Total, page.Pagination.Page, page.Pagination.Pages)
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <resource> <id>",
	Short: "Flip the publish or active flag of one item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		var item interface{}
		switch args[0] {
		case "blogs":
			item, err = c.Blogs.Toggle(ctx, args[1])
		case "case-studies":
			item, err = c.CaseStudies.Toggle(ctx, args[1])
		case "services":
			item, err = c.Services.Toggle(ctx, args[1])
		case "testimonials":
			item, err = c.Testimonials.Toggle(ctx, args[1])
		default:
			return fmt.Errorf("resource %q cannot be toggled", args[0])
		}
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), item)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	listCmd.Flags().StringArrayVarP(&listParams, "param", "p", nil, "query parameter as key=value, repeatable")
}

func parseParams(raw []string) (url.Values, error) {
	values := url.Values{}
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("param %q must be key=value", kv)
		}
		values.Add(strings.TrimSpace(k), v)
	}
	return values, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
