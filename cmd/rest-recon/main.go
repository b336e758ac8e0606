package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"rest-recon/internal/analyzer"
	"rest-recon/internal/collector"
	"rest-recon/internal/collector/dialects"
	"rest-recon/internal/config"
	"rest-recon/internal/exporter"
	"rest-recon/internal/logger"
	"rest-recon/internal/model"
	"rest-recon/internal/ui"
)

const (
	appName    = "REST Recon"
	appVersion = "1.0.0"
	appDesc    = "Static REST endpoint catalog for Spring MVC and JAX-RS sources"
)

var (
	configPath  string
	verbose     bool
	showVersion bool
	outputDir   string
	formats     string
	noWait      bool
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&formats, "format", "", "Comma-separated output formats, overrides config (html,openapi,yaml,excel,word)")
	flag.BoolVar(&noWait, "no-wait", false, "Exit without waiting for Enter")
}

func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
		}
		if !noWait {
			waitForEnter()
		}
		os.Exit(exitCode)
	}()

	exitCode = run()
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	printBanner()

	// 1. Initialize
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}

	if outputDir != "" {
		cfg.Output.Dir = outputDir
		if err := cfg.EnsureOutputDir(); err != nil {
			fmt.Printf("❌ Failed to create output directory: %v\n", err)
			return 1
		}
	}
	if formats != "" {
		cfg.Output.Formats = strings.Split(formats, ",")
	}

	if err := logger.Init(os.Stdout, cfg.LogPath(), verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		return 1
	}
	if verbose {
		cfg.Print()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runAnalysis(ctx, cfg); err != nil {
		logger.Error("Analysis failed: %v", err)
		return 1
	}

	logger.Info("✅ Analysis Complete. Check [%s] directory.", cfg.Output.Dir)
	return 0
}

// waitForEnter pauses execution and waits for user to press Enter
// This prevents the console window from closing immediately when double-clicked
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func runAnalysis(ctx context.Context, cfg *config.Config) error {
	selected, err := dialects.ByName(cfg.Analysis.Dialects)
	if err != nil {
		return err
	}
	exporters := exporter.GetExporters(cfg.Output.Formats)
	if len(exporters) == 0 {
		return fmt.Errorf("no known output format in %v", cfg.Output.Formats)
	}

	pipeline := ui.NewPipeline(ui.DefaultPhases)
	defer pipeline.Finish()

	// --- Phase 1: Scanning ---
	logger.Info("Phase 1: Scanning %s...", cfg.Project.RootDir)
	scanBar := pipeline.NextPhase(-1)
	files, err := analyzer.ScanDirectory(cfg.Project.RootDir, cfg.ShouldExclude)
	if err != nil {
		return err
	}
	scanBar.SetTotal(len(files))
	for range files {
		scanBar.Increment()
	}
	logger.Info("Found %d Java files", len(files))

	// --- Phase 2: Parsing ---
	logger.Info("Phase 2: Parsing...")
	parseBar := pipeline.NextPhase(len(files))
	built, err := analyzer.BuildModel(ctx, files, analyzer.BuildOptions{
		Encodings: cfg.Project.Encoding,
		Workers:   cfg.WorkerCount(),
		Progress:  parseBar.Increment,
	})
	if err != nil {
		return err
	}
	logger.Info("Parsed %d classes (%d files without a type, %d failures)", built.Parsed, built.Skipped, built.Failed)

	// --- Phase 3: Resolving ---
	logger.Info("Phase 3: Resolving endpoints (%s)...", strings.Join(cfg.Analysis.Dialects, ", "))
	var resolveBar *ui.ProgressBar
	resolver := collector.NewResolver(selected,
		collector.WithWorkers(cfg.WorkerCount()),
		collector.WithProgress(func() { resolveBar.Increment() }),
	)
	resolveBar = pipeline.NextPhase(resolver.Steps(built.Graph))

	catalog, err := resolver.Resolve(ctx, built.Graph)
	if catalog == nil {
		return err
	}
	if err != nil {
		// Per-class failures are already logged; the catalog keeps every other class
		logger.Warn("%d classes could not be resolved", len(unwrapJoined(err)))
	}
	catalog.GeneratedAt = time.Now().Format("2006-01-02 15:04:05")

	summary := catalog.Summary()
	logger.Info("Resolved %d endpoints in %d classes", summary.TotalEndpoints, summary.TotalClasses)

	// --- Phase 4: Reporting ---
	logger.Info("Phase 4: Generating Reports...")
	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}
	genBar := pipeline.NextPhase(len(exporters))

	var exportErrors []error
	for _, exp := range exporters {
		path, err := exp.Export(catalog, cfg)
		if err != nil {
			logger.Error("%s export failed: %v", exp.Name(), err)
			exportErrors = append(exportErrors, fmt.Errorf("%s: %w", exp.Name(), err))
		} else {
			logger.Debug("%s written to %s", exp.Name(), path)
		}
		genBar.Increment()
	}
	pipeline.Finish()
	pipeline.PrintSummary(summaryLine(summary))

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %w", errors.Join(exportErrors...))
	}
	return nil
}

func summaryLine(s model.Summary) string {
	parts := make([]string, 0, len(s.ByMethod))
	for _, m := range s.Methods() {
		parts = append(parts, fmt.Sprintf("%s %d", m, s.ByMethod[m]))
	}
	line := fmt.Sprintf("📘 %d endpoints in %d classes", s.TotalEndpoints, s.TotalClasses)
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	if n := logger.ParseFailures(); n > 0 {
		line += fmt.Sprintf(", %d files failed to parse (see %s)", n, logger.GetLogFilePath())
	}
	return line
}

// unwrapJoined lists the errors of an errors.Join result
func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                      REST RECON v1.0.0                    ║
║        Endpoint Catalog for Spring MVC and JAX-RS         ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
