package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/project-tktt/job-viewer/internal/config"
	"github.com/project-tktt/job-viewer/internal/domain"
	"github.com/project-tktt/job-viewer/internal/filter"
	"github.com/project-tktt/job-viewer/internal/loader"
	"github.com/project-tktt/job-viewer/internal/pager"
	"github.com/spf13/cobra"
)

func ListCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			keyword, _ := flags.GetString("keyword")
			qual, _ := flags.GetString("qual")
			board, _ := flags.GetString("board")
			state, _ := flags.GetString("state")
			month, _ := flags.GetString("month")
			sortBy, _ := flags.GetString("sort")
			page, _ := flags.GetInt("page")
			more, _ := flags.GetInt("more")
			asJSON, _ := flags.GetBool("json")
			showOptions, _ := flags.GetBool("options")

			criteria := filter.Criteria{
				Keyword:       keyword,
				Qualification: qual,
				Board:         board,
				State:         state,
				SortBy:        filter.SortBy(sortBy),
			}
			if month != "" {
				m, err := filter.ParseMonth(month)
				if err != nil {
					return err
				}
				criteria.Month = &m
			}

			ctx := cmd.Context()
			a := newApp(ctx, cfg)
			defer a.close()
			a.start(ctx)

			for i := 0; i < more; i++ {
				added, err := a.loader.LoadMore(ctx)
				if err != nil && !errors.Is(err, loader.ErrBusy) {
					return fmt.Errorf("load more: %w", err)
				}
				if added == 0 {
					break
				}
			}

			if showOptions {
				return printOptions(filter.CollectOptions(a.state.Records()))
			}

			a.state.SetCriteria(criteria)
			a.state.SetPage(page)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(a.state.PageJobs())
			}

			st := a.state.Status()
			fmt.Printf("--- %s ---\n", st.Summary())
			if st.Empty() {
				return nil
			}
			printJobs(a.state.PageJobs())
			if st.ShowControls {
				from, to := pager.Range(st.Page, st.Filtered)
				fmt.Printf("\nShowing %d-%d, page %d of %d\n", from, to, st.Page, st.TotalPages)
			}
			return nil
		},
	}

	cmd.Flags().String("keyword", "", "Match title, board or state (case-insensitive)")
	cmd.Flags().String("qual", "", "Exact qualification")
	cmd.Flags().String("board", "", "Exact board")
	cmd.Flags().String("state", "", "Exact state; excludes jobs without a state")
	cmd.Flags().String("month", "", "Last-date month as YYYY-MM")
	cmd.Flags().String("sort", string(filter.SortLastDateAsc), "lastDateAsc or lastDateDesc")
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("more", 0, "Fetch up to N extra pages from the API before listing")
	cmd.Flags().Bool("json", false, "Print the page as JSON")
	cmd.Flags().Bool("options", false, "Print the available filter values instead of jobs")
	return cmd
}

func printJobs(jobs []domain.Job) {
	fmt.Println("ID\tLast Date\tState\tBoard\tTitle")
	for _, job := range jobs {
		state := job.State
		if state == "" {
			state = "-"
		}
		fmt.Printf("%d\t%s\t%s\t%s\t%s\n", job.ID, job.LastDate, state, job.Board, job.Title)
	}
}

func printOptions(opts filter.Options) error {
	months := make([]string, len(opts.Months))
	for i, m := range opts.Months {
		months[i] = m.String()
	}
	fmt.Printf("Qualifications: %s\n", strings.Join(opts.Qualifications, " | "))
	fmt.Printf("Boards: %s\n", strings.Join(opts.Boards, " | "))
	fmt.Printf("States: %s\n", strings.Join(opts.States, " | "))
	fmt.Printf("Months: %s\n", strings.Join(months, " | "))
	return nil
}
