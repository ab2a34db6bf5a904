package main

import (
	"context"

	"github.com/project-tktt/job-viewer/internal/cache"
	"github.com/project-tktt/job-viewer/internal/config"
	"github.com/project-tktt/job-viewer/internal/details"
	"github.com/project-tktt/job-viewer/internal/loader"
	"github.com/project-tktt/job-viewer/internal/source"
	"github.com/project-tktt/job-viewer/internal/viewer"
)

// app wires the pipeline for one CLI invocation
type app struct {
	cfg      *config.Config
	client   *source.Client
	cache    *cache.Cache
	state    *viewer.State
	resolver *details.Resolver
	loader   *loader.Loader
}

func newApp(ctx context.Context, cfg *config.Config) *app {
	client := source.NewClient(source.Config{
		SnapshotURL: cfg.Source.SnapshotURL,
		DetailsURL:  cfg.Source.DetailsURL,
		APIBases:    cfg.Source.APIBases,
		PageLimit:   cfg.Source.PageLimit,
		Timeout:     cfg.Source.Timeout,
		UserAgent:   cfg.Source.UserAgent,
		RatePerSec:  cfg.Source.RatePerSec,
		RateBurst:   cfg.Source.RateBurst,
	})

	c := cache.Open(ctx, cfg)
	state := viewer.New()
	resolver := details.NewResolver(details.NewCache(), client)

	l := loader.New(state, client, c, resolver, loader.Options{
		RefreshInterval: cfg.Loader.RefreshInterval,
		GrowthInterval:  cfg.Loader.GrowthInterval,
		PagePause:       cfg.Loader.PagePause,
		Online:          cfg.Loader.Online,
	})

	return &app{
		cfg:      cfg,
		client:   client,
		cache:    c,
		state:    state,
		resolver: resolver,
		loader:   l,
	}
}

// start loads records and waits for the background refresh so one-shot
// commands see the freshest list
func (a *app) start(ctx context.Context) {
	a.loader.Start(ctx)
	a.loader.Wait()
}

func (a *app) close() {
	a.cache.Close()
}
