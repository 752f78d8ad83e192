package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mogtools/ahsync/internal/config"
	"github.com/mogtools/ahsync/internal/domain"
	"github.com/mogtools/ahsync/internal/ffxiah"
	"github.com/mogtools/ahsync/internal/inventory"
	applog "github.com/mogtools/ahsync/internal/log"
	"github.com/mogtools/ahsync/internal/pricesync"
	"github.com/mogtools/ahsync/internal/search"
	"github.com/mogtools/ahsync/internal/store"
	"github.com/mogtools/ahsync/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	itemsPath string
	server    string
	filter    string
	plain     bool
	noTTL     bool
}

func main() {
	var showVersion bool
	var opts options

	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.itemsPath, "items", "", "item manifest to price (CSV: id,name[,category[,count]])")
	flag.StringVar(&opts.server, "server", "", "auction house server (overrides config)")
	flag.StringVar(&opts.filter, "filter", "", "fuzzy-filter items by name before fetching")
	flag.BoolVar(&opts.plain, "plain", false, "plain line output instead of the progress UI")
	flag.BoolVar(&opts.noTTL, "no-ttl", false, "ignore cache age and refetch stale entries only when missing")
	flag.Parse()

	if showVersion {
		fmt.Printf("ahsync %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := applog.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = applog.NullLogger()
	}
	slog.SetDefault(logger)
	logger.Info("starting ahsync", "version", Version)

	server := strings.TrimSpace(opts.server)
	if server == "" {
		server = strings.TrimSpace(cfg.Server)
	}
	if server == "" {
		return fmt.Errorf("no server selected; pass -server or set it in the config (known: %s)",
			strings.Join(ffxiah.Servers(), ", "))
	}

	if opts.itemsPath == "" {
		return fmt.Errorf("no item manifest; pass -items")
	}
	items, err := inventory.LoadManifest(opts.itemsPath)
	if err != nil {
		return err
	}
	if opts.filter != "" {
		items = search.FilterItems(items, opts.filter)
	}
	if len(items) == 0 {
		fmt.Println("No items to fetch.")
		return nil
	}

	priceStore, err := store.Open(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to open price cache: %w", err)
	}
	defer priceStore.Close()

	client := ffxiah.NewClient(cfg.Ffxiah.BaseURL,
		time.Duration(cfg.Ffxiah.TimeoutSeconds)*time.Second, logger)

	svc := pricesync.NewService(priceStore, client, pricesync.Config{
		TTLEnabled: cfg.Cache.TTLEnabled && !opts.noTTL,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result domain.BatchResult
	if opts.plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		result, err = runPlain(ctx, svc, items, server)
	} else {
		result, err = runTUI(ctx, svc, items, server)
	}
	if err != nil {
		return err
	}

	printPrices(items)
	logger.Info("batch finished", "outcome", result.Outcome.String(),
		"completed", result.Completed, "total", result.Total, "fromCache", result.FromCache)
	return nil
}

func runPlain(ctx context.Context, svc *pricesync.Service, items []*domain.Item, server string) (domain.BatchResult, error) {
	result, err := svc.FetchPrices(ctx, items, server, func(completed, total int) {
		fmt.Fprintf(os.Stderr, "Loading FFXIAH prices... %d/%d\n", completed, total)
	})
	if err != nil {
		return result, err
	}

	switch result.Outcome {
	case domain.OutcomeCanceled:
		fmt.Fprintf(os.Stderr, "FFXIAH price fetch canceled after %d/%d items.\n", result.Completed, result.Total)
	default:
		if result.Total == 0 {
			fmt.Fprintln(os.Stderr, "FFXIAH prices already cached.")
		} else {
			fmt.Fprintf(os.Stderr, "Loaded FFXIAH prices for %d items.\n", result.Completed)
		}
	}
	return result, nil
}

func runTUI(ctx context.Context, svc *pricesync.Service, items []*domain.Item, server string) (domain.BatchResult, error) {
	p := tea.NewProgram(tui.NewModel(server, svc.Cancel))

	go func() {
		result, err := svc.FetchPrices(ctx, items, server, func(completed, total int) {
			p.Send(tui.ProgressMsg{Completed: completed, Total: total})
		})
		p.Send(tui.DoneMsg{Result: result, Err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("progress UI failed: %w", err)
	}

	model := finalModel.(tui.Model)
	result, fetchErr := model.Result()
	return result, fetchErr
}

// printPrices writes the enriched item rows to stdout.
func printPrices(items []*domain.Item) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMEDIAN\tLAST SALE")
	for _, item := range items {
		if !item.Marketable() {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.ID, item.Name, item.Median, item.LastSale)
	}
	w.Flush()
}
