// Command dogreport runs every dog-license analysis over the downloaded
// dataset, prints a console summary and writes the XLSX report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"insightcli/internal/analytics"
	"insightcli/internal/config"
	"insightcli/internal/infrastructure"
	"insightcli/internal/services"
)

func main() {
	input := flag.String("input", "", "dog-license CSV path (defaults to data/downloads/dog_licenses.csv)")
	expiringDays := flag.Int("expiring-days", analytics.ExpiringSoonDays, "window in days for \"expiring soon\"")
	noExport := flag.Bool("no-export", false, "skip writing the XLSX report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	paths, err := config.GetPaths()
	if err != nil {
		logger.Error("failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create directories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *input != "" {
		paths.DogLicensesCSV = *input
	}

	data := services.NewDataService(paths, logger, nil)
	reports := services.NewReportService(data, paths, logger, analytics.DogAnalyzerConfig{
		ExpiringDays: *expiringDays,
	})

	ctx := context.Background()
	report, err := reports.DogReport(ctx)
	if err != nil {
		logger.Error("analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printReport(report, *expiringDays)

	if !*noExport {
		xlsxPath, err := reports.ExportDogSummary(ctx)
		if err != nil {
			logger.Error("export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		csvPath, err := reports.ExportExpiringLicenses(ctx)
		if err != nil {
			logger.Error("expiring-licenses export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", xlsxPath)
		fmt.Printf("Expiring licenses written to %s\n", csvPath)
	}
}

func printReport(report analytics.DogReport, expiringDays int) {
	fmt.Println("NYC Dog License Report")
	fmt.Println("======================")
	fmt.Printf("Total dogs:        %d\n", report.Overview.TotalDogs)
	fmt.Printf("Active licenses:   %d\n", report.Overview.Active)
	fmt.Printf("Expiring (%d days): %d\n", expiringDays, report.Overview.ExpiringSoon)
	fmt.Printf("Already expired:   %d\n", report.Expiry.AlreadyExpired)

	fmt.Println("\nTop names:")
	for _, kc := range report.Names.TopNames {
		fmt.Printf("  %-20s %d\n", kc.Key, kc.Count)
	}

	fmt.Println("\nTop breeds:")
	for _, kc := range report.Breeds.TopBreeds {
		fmt.Printf("  %-40s %d\n", kc.Key, kc.Count)
	}

	fmt.Println("\nTop zipcodes:")
	for _, kc := range report.Geography.TopZipcodes {
		fmt.Printf("  %-10s %d\n", kc.Key, kc.Count)
	}

	fmt.Println("\nDemographics:")
	fmt.Printf("  Mean age:   %.1f\n", report.Demographics.MeanAge)
	fmt.Printf("  Median age: %.1f\n", report.Demographics.MedianAge)
	fmt.Printf("  Oldest:     %s (%s, %d years)\n",
		report.Demographics.Oldest.Name,
		report.Demographics.Oldest.Breed,
		report.Demographics.Oldest.Age)

	fmt.Println("\nIssuance:")
	fmt.Printf("  Peak month:   %s\n", report.Issuance.PeakMonth)
	fmt.Printf("  Peak year:    %d\n", report.Issuance.PeakYear)
	fmt.Printf("  Peak weekday: %s\n", report.Issuance.PeakWeekday)
}
