package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/project-tktt/job-viewer/internal/common/inference"
	"github.com/project-tktt/job-viewer/internal/config"
	"github.com/project-tktt/job-viewer/internal/details"
	"github.com/project-tktt/job-viewer/internal/domain"
	"github.com/spf13/cobra"
)

func DetailsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Show the full details of one job",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobURL, _ := cmd.Flags().GetString("url")
			id, _ := cmd.Flags().GetInt("id")
			if jobURL == "" && id == 0 {
				return fmt.Errorf("one of --url or --id is required")
			}

			ctx := cmd.Context()
			a := newApp(ctx, cfg)
			defer a.close()
			a.start(ctx)

			var (
				job domain.Job
				ok  bool
			)
			if jobURL != "" {
				job, ok = a.state.Lookup(jobURL)
				if !ok {
					job = domain.Job{URL: jobURL}
				}
			} else if job, ok = a.state.ByID(id); !ok {
				return fmt.Errorf("no job with id %d", id)
			}

			return showDetails(ctx, a.resolver, job)
		},
	}
	cmd.Flags().String("url", "", "Job URL")
	cmd.Flags().Int("id", 0, "Job id from the list output")
	return cmd
}

func LinkCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link QUERY",
		Short: "Open a shared job link (url=...&title=...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			if i := strings.IndexByte(raw, '?'); i >= 0 {
				raw = raw[i+1:]
			}
			q, err := url.ParseQuery(raw)
			if err != nil {
				return fmt.Errorf("parse link: %w", err)
			}
			job := domain.JobFromQuery(q)
			inference.DeriveFields(&job)

			ctx := cmd.Context()
			a := newApp(ctx, cfg)
			defer a.close()
			// Shared links skip the job list; only the bulk details map is loaded
			if m, err := a.client.FetchDetailsMap(ctx); err == nil {
				a.resolver.ReplaceAll(m)
			} else {
				log.Printf("[Details] Details map unavailable: %v", err)
			}
			return showDetails(ctx, a.resolver, job)
		},
	}
	return cmd
}

func showDetails(ctx context.Context, r *details.Resolver, job domain.Job) error {
	res := r.Resolve(ctx, job)
	j := res.Job

	fmt.Printf("--- %s ---\n", orDash(j.Title))
	printField("Board", j.Board)
	printField("State", j.State)
	printField("Qualification", j.Qualification)
	printField("Last Date", j.LastDate)
	if j.PostCount != nil {
		printField("Posts", fmt.Sprint(*j.PostCount))
	}
	printField("Post Name", j.PostName)
	printField("No. of Posts", j.NoOfPosts)
	printField("Organisation", j.CompanyName)
	printField("Advt No", j.AdvtNo)
	printField("Salary", j.Salary)
	printField("Age Limit", j.AgeLimit)
	printField("URL", j.URL)

	if !res.OK() {
		fmt.Printf("\nDetails %s: %v\n", res.Status, res.Err)
		return nil
	}

	d := res.Detail
	for _, date := range d.ImportantDatesTable {
		printField(date.Event, date.Date)
	}
	printList("Eligibility", d.Eligibility)
	printList("Selection Process", d.SelectionProcess)
	printList("How to Apply", d.HowToApply)
	if len(d.ImportantLinks) > 0 {
		fmt.Println("\nImportant Links:")
		for _, l := range d.ImportantLinks {
			fmt.Printf("  [%s] %s %s\n", l.Type, orDash(l.Label), l.URL)
		}
	}
	fmt.Printf("\n(%s)\n", res.Status)
	return nil
}

func printField(name, val string) {
	if val != "" {
		fmt.Printf("%s:\t%s\n", name, val)
	}
}

func printList(name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", name)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
