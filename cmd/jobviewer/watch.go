package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/project-tktt/job-viewer/internal/config"
	"github.com/project-tktt/job-viewer/internal/viewer"
	"github.com/spf13/cobra"
)

func WatchCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the job list fresh and print status changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a := newApp(ctx, cfg)
			defer a.close()

			var last string
			a.state.OnStatus(func(st viewer.Status) {
				line := fmt.Sprintf("%s (%d total), page %d/%d, %s", st.Summary(), st.Total, st.Page, st.TotalPages, st.LoadMore.Label)
				if line != last {
					last = line
					fmt.Println(line)
				}
			})

			// Handle graceful shutdown
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := a.loader.Run(ctx); err != nil {
					log.Printf("Loader error: %v", err)
				}
			}()

			select {
			case <-sigChan:
				log.Println("Shutdown signal received, stopping...")
			case <-ctx.Done():
			}
			cancel()

			// Wait for goroutines to finish
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()

			select {
			case <-done:
				log.Println("Graceful shutdown complete")
			case <-time.After(30 * time.Second):
				log.Println("Shutdown timeout, forcing exit")
			}
			return nil
		},
	}
	return cmd
}
