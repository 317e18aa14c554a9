package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/placeholder-collector/internal/config"
	"github.com/samvad-hq/placeholder-collector/internal/domain"
	"github.com/samvad-hq/placeholder-collector/internal/logger"
	"github.com/samvad-hq/placeholder-collector/internal/storage"
	"github.com/samvad-hq/placeholder-collector/pkg/httpclient"
	"github.com/samvad-hq/placeholder-collector/pkg/placeholder"
	"github.com/samvad-hq/placeholder-collector/pkg/publishers"
)

// Collector wires together the API client, the seen-ID store, and the
// publisher fanout, and executes poll loops against the comments feed.
type Collector struct {
	cfg          *config.Config
	client       *placeholder.Client
	store        storage.Store
	fanout       *publishers.Fanout
	pollInterval time.Duration
}

// New builds a collector runtime from config.
func New(ctx context.Context, cfg *config.Config) (*Collector, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	client := placeholder.New(cfg.BaseURL, httpclient.NewRestyClient(cfg.HTTPTimeout))

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, logAdapter{})
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	logger.InfoObj("publishers registry loaded", "publishers", enabled)

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		CommentTTL:      cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	return newCollector(cfg, client, store, fanout), nil
}

// newCollector assembles a collector from explicit dependencies.
func newCollector(cfg *config.Config, client *placeholder.Client, store storage.Store, fanout *publishers.Fanout) *Collector {
	interval := time.Duration(0)
	if cfg != nil {
		interval = cfg.PollInterval
	}
	return &Collector{
		cfg:          cfg,
		client:       client,
		store:        store,
		fanout:       fanout,
		pollInterval: interval,
	}
}

// Run starts the poll loop until the context is cancelled.
func (c *Collector) Run(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("collector is not initialized")
	}

	logger.InfoObj("collector loop starting", "collector_state", map[string]any{
		"base_url":         c.client.BaseURL(),
		"publishers_count": c.fanout.Size(),
		"poll_interval":    c.pollInterval.String(),
	})

	if err := c.runOnce(ctx); err != nil {
		return fmt.Errorf("initial poll: %w", err)
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoObj("collector loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := c.runOnce(ctx); err != nil {
				logger.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

// runOnce executes a single poll pass: fetch, dedupe, publish, mark.
func (c *Collector) runOnce(ctx context.Context) error {
	start := time.Now()
	endpoint := placeholder.Comments()

	comments, err := placeholder.Get[[]domain.Comment](ctx, c.client, endpoint, nil)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint.Path(), err)
	}

	published := 0
	var errs []error
	for _, comment := range comments {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		seen, err := c.store.SeenComment(comment.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("check comment %d: %w", comment.ID, err))
			continue
		}
		if seen {
			continue
		}

		evt := publishers.NewEvent(endpoint.Path(), comment)
		if _, err := c.fanout.Publish(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("publish comment %d: %w", comment.ID, err))
			continue
		}
		if err := c.store.MarkComment(comment.ID); err != nil {
			errs = append(errs, fmt.Errorf("mark comment %d: %w", comment.ID, err))
			continue
		}
		published++
	}

	logger.InfoObj("poll completed", "poll_meta", map[string]any{
		"comments_fetched":   len(comments),
		"comments_published": published,
		"elapsed_ms":         time.Since(start).Milliseconds(),
	})

	if len(errs) > 0 {
		logger.ErrorObj("poll finished with errors", "poll_errors", map[string]any{
			"error_count": len(errs),
		})
	}
	return errors.Join(errs...)
}

// Close releases collector resources.
func (c *Collector) Close() error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Close()
}

// logAdapter bridges the package logger to the publishers.Logger surface.
type logAdapter struct{}

func (logAdapter) InfoObj(msg, key string, obj interface{})  { logger.InfoObj(msg, key, obj) }
func (logAdapter) DebugObj(msg, key string, obj interface{}) { logger.DebugObj(msg, key, obj) }
func (logAdapter) WarnObj(msg, key string, obj interface{})  { logger.WarnObj(msg, key, obj) }
func (logAdapter) ErrorObj(msg, key string, obj interface{}) { logger.ErrorObj(msg, key, obj) }
