package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/cachestore"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/differ"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/extractor"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/fetcher"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/logger"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/orchestrator"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/registry"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/reporter"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/signature"
)

func main() {
	os.Exit(run())
}

// run carries the whole invocation so deferred cleanup (the cache store
// handle in particular) executes before the process exits.
func run() int {
	configFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	sourcesFile := flag.String("sources", "sources.yaml", "Path to the {jurisdiction: [urls]} source list (YAML or JSON).")
	jurisdiction := flag.String("jurisdiction", "", "Only run sources belonging to this jurisdiction.")
	pattern := flag.String("pattern", "", "Only run sources whose ID or URL contains this substring.")
	singleURL := flag.String("url", "", "Run a single URL resolved against the registered sources.")
	limit := flag.Int("limit", 0, "Cap on the number of sources to run (0 = no cap).")
	onlyUpdated := flag.Bool("only-updated", false, "Omit unchanged results from the output file.")
	outDir := flag.String("out", "data/runs", "Directory for JSONL run output.")
	concurrency := flag.Int("concurrency", 0, "Worker pool size (overrides config when > 0).")
	flag.Parse()

	gCfg, err := config.LoadGlobalConfig(*configFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", *configFile, err)
	}
	if *concurrency > 0 {
		gCfg.BatchConfig.Concurrency = *concurrency
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	reg, err := registry.LoadSourceList(*sourcesFile, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Str("path", *sourcesFile).Msg("Could not load source list")
	}

	sources, err := selectSources(reg, *singleURL, *jurisdiction, *pattern, *limit)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not select sources")
	}
	if len(sources) == 0 {
		zLogger.Fatal().Msg("No sources match the given filters")
	}

	store, err := cachestore.NewStore(gCfg.CacheConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not open cache store")
	}
	defer store.Close()

	orch := orchestrator.NewScrapeOrchestrator(
		fetcher.NewFetcher(fetcher.NewHTTPClient(gCfg.FetcherConfig, zLogger), zLogger, gCfg.FetcherConfig),
		extractor.NewExtractor(gCfg.ExtractorConfig, zLogger),
		signature.NewEngine(zLogger),
		store,
		differ.NewContentDiffer(zLogger),
		gCfg.BatchConfig,
		zLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := orch.RunBatch(ctx, sources)

	jr := reporter.NewJSONLReporter(*outDir, *onlyUpdated, zLogger)
	outPath, err := jr.Write(report)
	if err != nil {
		zLogger.Error().Err(err).Msg("Could not write run output")
	} else {
		zLogger.Info().Str("path", outPath).Msg("Run output written")
	}

	ok := report.Attempted - report.Errored
	fmt.Printf("Done: ok=%d updated=%d failed=%d\n", ok, report.Updated, report.Errored)

	if report.Attempted == 0 || report.Errored == report.Attempted {
		return 1
	}
	return 0
}

// selectSources applies the CLI filters to the registry's sources. A
// single URL resolves through longest-prefix matching and bypasses the
// other filters.
func selectSources(reg *registry.Registry, singleURL, jurisdiction, pattern string, limit int) ([]models.Source, error) {
	if singleURL != "" {
		src, err := reg.ResolveURL(singleURL)
		if err != nil {
			return nil, err
		}
		return []models.Source{src}, nil
	}

	var out []models.Source
	for _, src := range reg.Sources() {
		if !src.Active {
			continue
		}
		if jurisdiction != "" && src.Jurisdiction != jurisdiction {
			continue
		}
		if pattern != "" && !strings.Contains(src.ID, pattern) && !strings.Contains(src.URL, pattern) {
			continue
		}
		out = append(out, src)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
