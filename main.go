package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"workshop-quote/config"
	"workshop-quote/formatter"
	"workshop-quote/metrics"
	"workshop-quote/models"
	"workshop-quote/parser"
	"workshop-quote/pricing"
	"workshop-quote/refdata"
	"workshop-quote/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Define flags
	input := flag.String("input", "", "Quote request JSON file (required unless -serve)")
	items := flag.String("items", "", "CSV sheet replacing the request's production items or job lines")
	format := flag.String("format", "text", "Output format: text|json|csv")
	refdataPath := flag.String("refdata", cfg.RefdataPath, "Reference tables YAML (default: embedded tables)")
	serve := flag.Bool("serve", false, "Serve the HTTP API instead of pricing a single request")
	addr := flag.String("addr", cfg.Addr(), "Listen address for -serve")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", cfg.PushgatewayURL, "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	table, err := loadTables(*refdataPath)
	if err != nil {
		fmt.Printf("Error loading reference data: %v\n", err)
		os.Exit(1)
	}
	metrics.RefdataPrisons.Set(float64(len(table.Prisons())))
	engine := pricing.NewEngine(table, cfg.Apply(table.Defaults()))

	if *serve {
		log.Printf("Quote API listening on %s", *addr)
		if err := http.ListenAndServe(*addr, server.New(engine, table).Routes()); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	// Validate required input flag
	if *input == "" {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	start := time.Now()
	req, err := readRequest(*input, *items, engine.Defaults())
	if err != nil {
		metrics.Observe("", nil, err, time.Since(start))
		pushMetrics(*pushGateway)
		fmt.Printf("Error parsing input: %v\n", err)
		os.Exit(1)
	}

	result, err := engine.Quote(req)
	metrics.Observe(req.Contract.Kind(), result, err, time.Since(start))
	if err != nil {
		pushMetrics(*pushGateway)
		fmt.Printf("Error pricing quote: %v\n", err)
		os.Exit(1)
	}

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(result))
	case "csv":
		fmt.Print(formatter.FormatCSV(result))
	default: // "text"
		fmt.Print(formatter.FormatText(result))
	}

	pushMetrics(*pushGateway)

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		time.Sleep(100 * time.Millisecond)
	}
}

func loadTables(path string) (*refdata.Table, error) {
	if path == "" {
		return refdata.Embedded()
	}
	return refdata.LoadFile(path)
}

// readRequest parses the request document and, when itemsPath is set,
// replaces its items or job lines with the CSV sheet.
func readRequest(inputPath, itemsPath string, defaults refdata.Defaults) (models.QuoteRequest, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return models.QuoteRequest{}, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	req, err := parser.ParseRequest(file, defaults)
	if err != nil || itemsPath == "" {
		return req, err
	}

	sheet, err := os.Open(itemsPath)
	if err != nil {
		return models.QuoteRequest{}, fmt.Errorf("error opening items sheet: %w", err)
	}
	defer sheet.Close()

	switch c := req.Contract.(type) {
	case models.ContractualProduction:
		if c.Items, err = parser.ParseItems(sheet); err != nil {
			return models.QuoteRequest{}, err
		}
		req.Contract = c
	case models.AdhocProduction:
		if c.Lines, err = parser.ParseAdhocLines(sheet); err != nil {
			return models.QuoteRequest{}, err
		}
		req.Contract = c
	default:
		return models.QuoteRequest{}, fmt.Errorf("-items applies only to production contracts, not %s", req.Contract.Kind())
	}
	return req, nil
}

func pushMetrics(url string) {
	if url == "" {
		return
	}
	jobName := "workshop_quote"
	if err := push.New(url, jobName).Gatherer(metrics.Registry).Push(); err != nil {
		fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
	} else {
		fmt.Println("\nMetrics successfully pushed to Pushgateway")
	}
}
