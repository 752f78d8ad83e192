// Package pricesync orchestrates auction house price refreshes: it resolves
// items from the per-server cache, fetches the rest sequentially over the
// network, merges scraped values into the live item set, and persists the
// cache at batch boundaries.
package pricesync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mogtools/ahsync/internal/domain"
	"github.com/mogtools/ahsync/internal/scrape"
)

// Config carries the orchestrator's tunables.
type Config struct {
	TTLEnabled bool          // enforce the cache TTL
	TTL        time.Duration // 0 means DefaultTTL
}

// Service runs price fetch batches. At most one batch is active at a time:
// starting a new one cancels the batch in flight and waits for it to wind
// down before proceeding.
type Service struct {
	store   domain.PriceStore
	fetcher domain.PageFetcher
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.Mutex // guards active
	active *batch     // most recently started batch, running or queued
	runMu  sync.Mutex // serializes batches
}

// batch identifies one FetchPrices call for cancellation purposes.
type batch struct {
	cancel context.CancelFunc
}

// NewService creates a price sync service.
func NewService(store domain.PriceStore, fetcher domain.PageFetcher, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Cancel requests cooperative cancellation of the most recently started
// batch, if any.
func (s *Service) Cancel() {
	s.mu.Lock()
	if s.active != nil {
		s.active.cancel()
	}
	s.mu.Unlock()
}

// FetchPrices refreshes Median/LastSale on the live item set for server.
//
// Items are deduplicated by id (first-seen name wins); non-marketable items
// are skipped. Anything satisfiable from fresh cache is applied without a
// network request; the rest is fetched one request at a time, in queue
// order, with onProgress called after each completed item. Cancellation and
// the first network failure both end the batch early; either way everything
// accumulated so far stays applied and is persisted.
func (s *Service) FetchPrices(ctx context.Context, items []*domain.Item, server string, onProgress domain.ProgressFunc) (domain.BatchResult, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return domain.BatchResult{Outcome: domain.OutcomeFailed}, domain.ErrNoServer
	}

	ctx, b := s.begin(ctx)
	defer s.end(b)

	medians, err := s.store.LoadMedians(server)
	if err != nil {
		return domain.BatchResult{Server: server, Outcome: domain.OutcomeFailed}, fmt.Errorf("load median cache: %w", err)
	}
	lastSales, err := s.store.LoadLastSales(server)
	if err != nil {
		return domain.BatchResult{Server: server, Outcome: domain.OutcomeFailed}, fmt.Errorf("load last-sale cache: %w", err)
	}
	times, err := s.store.LoadFetchTimes(server)
	if err != nil {
		return domain.BatchResult{Server: server, Outcome: domain.OutcomeFailed}, fmt.Errorf("load fetch times: %w", err)
	}

	fresh := NewFreshness(s.cfg.TTLEnabled, s.cfg.TTL, times)
	queue, fromCache := s.resolveFromCache(items, medians, lastSales, fresh)

	result := domain.BatchResult{Server: server, Total: len(queue), FromCache: fromCache}
	if len(queue) == 0 {
		s.logger.Debug("prices already cached", "server", server, "items", fromCache)
		result.Outcome = domain.OutcomeComplete
		return result, nil
	}

	s.logger.Info("fetching prices", "server", server, "queued", len(queue), "fromCache", fromCache)

	for _, target := range queue {
		if ctx.Err() != nil {
			result.Outcome = domain.OutcomeCanceled
			s.persist(server, medians, lastSales, times)
			return result, nil
		}

		payload, err := s.fetcher.ItemPage(ctx, target.ID, target.Name, server)
		if err != nil {
			// A request aborted by cancellation is not a failure; its
			// partial result is discarded.
			if ctx.Err() != nil {
				result.Outcome = domain.OutcomeCanceled
				s.persist(server, medians, lastSales, times)
				return result, nil
			}
			result.Outcome = domain.OutcomeFailed
			s.persist(server, medians, lastSales, times)
			s.logger.Error("price fetch aborted", "error", err, "itemID", target.ID, "server", server)
			return result, fmt.Errorf("fetch prices for item %d: %w", target.ID, err)
		}

		// A request in flight when cancellation arrives completes
		// naturally, but its result is discarded.
		if ctx.Err() != nil {
			result.Outcome = domain.OutcomeCanceled
			s.persist(server, medians, lastSales, times)
			return result, nil
		}

		// A fresh cached field wins over a rescrape, so a payload that
		// fails to yield that field cannot clobber a good value.
		reuse := fresh.IsFresh(target.ID)
		median, hasMedian := medians[target.ID]
		if !reuse || !hasMedian {
			median = scrape.Median(payload, server).Display()
		}
		lastSale, hasLastSale := lastSales[target.ID]
		if !reuse || !hasLastSale {
			lastSale = scrape.LastSale(payload, server).Display()
		}

		medians[target.ID] = median
		lastSales[target.ID] = lastSale
		times[target.ID] = s.now().UTC()
		applyValues(items, target.ID, median, lastSale)

		result.Completed++
		if onProgress != nil {
			onProgress(result.Completed, result.Total)
		}
	}

	result.Outcome = domain.OutcomeComplete
	s.persist(server, medians, lastSales, times)
	s.logger.Info("price fetch complete", "server", server, "fetched", result.Completed)
	return result, nil
}

// resolveFromCache deduplicates the live item set into a fetch queue and
// applies every cached-and-fresh value immediately, so the caller sees
// partial knowledge before any network roundtrip.
func (s *Service) resolveFromCache(items []*domain.Item, medians, lastSales map[int]string, fresh *Freshness) ([]domain.FetchTarget, int) {
	var queue []domain.FetchTarget
	fromCache := 0
	seen := make(map[int]bool)

	for _, item := range items {
		if !item.Marketable() || seen[item.ID] {
			continue
		}
		seen[item.ID] = true

		isFresh := fresh.IsFresh(item.ID)
		median, hasMedian := medians[item.ID]
		lastSale, hasLastSale := lastSales[item.ID]
		hasMedian = hasMedian && isFresh
		hasLastSale = hasLastSale && isFresh

		if hasMedian || hasLastSale {
			applied, appliedLast := "", ""
			if hasMedian {
				applied = median
			}
			if hasLastSale {
				appliedLast = lastSale
			}
			applyValues(items, item.ID, applied, appliedLast)
		}

		if hasMedian && hasLastSale {
			fromCache++
			continue
		}
		queue = append(queue, domain.FetchTarget{ID: item.ID, Name: item.Name})
	}

	return queue, fromCache
}

// persist writes all three cache maps for the server in one shot. Batch
// boundaries are the unit of durability; a save failure is logged but does
// not change the batch outcome.
func (s *Service) persist(server string, medians, lastSales map[int]string, times map[int]time.Time) {
	if err := s.store.SaveMedians(server, medians); err != nil {
		s.logger.Error("failed to save median cache", "error", err, "server", server)
	}
	if err := s.store.SaveLastSales(server, lastSales); err != nil {
		s.logger.Error("failed to save last-sale cache", "error", err, "server", server)
	}
	if err := s.store.SaveFetchTimes(server, times); err != nil {
		s.logger.Error("failed to save fetch times", "error", err, "server", server)
	}
}

// applyValues writes the display strings onto every live row carrying the
// id. Empty strings leave the existing value alone.
func applyValues(items []*domain.Item, itemID int, median, lastSale string) {
	for _, item := range items {
		if item.ID != itemID {
			continue
		}
		if median != "" {
			item.Median = median
		}
		if lastSale != "" {
			item.LastSale = lastSale
		}
	}
}

// begin registers the new batch, cancels the one registered before it, and
// takes the run slot. Registration happens before the wait, so a batch
// queued behind a slow fetch is itself canceled the moment a newer one
// starts; it observes the cancellation on its first queue iteration.
func (s *Service) begin(ctx context.Context) (context.Context, *batch) {
	ctx, cancel := context.WithCancel(ctx)
	b := &batch{cancel: cancel}

	s.mu.Lock()
	if s.active != nil {
		s.active.cancel()
	}
	s.active = b
	s.mu.Unlock()

	s.runMu.Lock()
	return ctx, b
}

func (s *Service) end(b *batch) {
	s.mu.Lock()
	b.cancel()
	if s.active == b {
		s.active = nil
	}
	s.mu.Unlock()
	s.runMu.Unlock()
}
