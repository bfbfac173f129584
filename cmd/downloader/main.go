// Command downloader fetches NYC dog-license records from the Socrata Open
// Data API with optional filters and writes them to the downloads directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"insightcli/internal/config"
	"insightcli/internal/exporter"
	"insightcli/internal/infrastructure"
	"insightcli/internal/socrata"
)

func main() {
	output := flag.String("output", "", "output file path (defaults to data/downloads/dog_licenses.csv)")
	format := flag.String("format", "csv", "download format: csv | json")
	limit := flag.Int("limit", 0, "maximum records to fetch; 0 downloads the full dataset")
	offset := flag.Int("offset", 0, "record offset for manual paging")
	zipcodes := flag.String("zipcodes", "", "comma-separated zipcodes to filter on")
	breeds := flag.String("breeds", "", "comma-separated breed names to filter on")
	gender := flag.String("gender", "", "filter by animal gender: M | F")
	startDate := flag.String("start-date", "", "earliest license issue date (YYYY-MM-DD)")
	endDate := flag.String("end-date", "", "latest license issue date (YYYY-MM-DD)")
	expiring := flag.Int("expiring", 0, "only licenses expiring within N days")
	where := flag.String("where", "", "raw SoQL $where clause, combined with the other filters")
	order := flag.String("order", "", "raw SoQL $order clause")
	selectCols := flag.String("select", "", "raw SoQL $select clause")
	sample := flag.Int("sample", 0, "print N sample records to stdout and exit")
	info := flag.Bool("info", false, "print dataset metadata and exit")
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

	client := socrata.NewClient(cfg.Downloader, logger)
	ctx := context.Background()

	if *info {
		meta, err := client.DatasetInfo(ctx)
		if err != nil {
			logger.Error("failed to fetch dataset info", slog.String("error", err.Error()))
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(meta); err != nil {
			logger.Error("failed to print dataset info", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if *sample > 0 {
		page, err := client.Sample(ctx, *sample)
		if err != nil {
			logger.Error("failed to fetch sample", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(strings.Join(page.Header, ","))
		for _, row := range page.Rows {
			fmt.Println(strings.Join(row, ","))
		}
		return
	}

	req := socrata.DownloadRequest{
		Limit:     *limit,
		Offset:    *offset,
		Zipcodes:  splitList(*zipcodes),
		Breeds:    splitList(*breeds),
		Gender:    *gender,
		StartDate: *startDate,
		EndDate:   *endDate,
		Expiring:  *expiring,
		Where:     *where,
		Order:     *order,
		Select:    *selectCols,
	}

	query, err := client.BuildQuery(req)
	if err != nil {
		logger.Error("invalid download request", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dest := *output
	if dest == "" {
		dest = paths.DogLicensesCSV
		if *format == "json" {
			dest = paths.GetDownloadPath("dog_licenses.json")
		}
	}

	logger.Info("starting download",
		slog.String("destination", dest),
		slog.String("format", *format),
		slog.Int("limit", *limit))

	// A bounded request maps to a single API call; a full CSV download pages
	// through the dataset instead.
	if *format == "json" || *limit > 0 {
		err = client.SaveToFile(ctx, query, *format, dest)
	} else {
		var page *socrata.Page
		if page, err = client.DownloadAll(ctx, query); err == nil {
			err = writeCSV(exporter.NewCSVWriter(paths), dest, page)
		}
	}
	if err != nil {
		logger.Error("download failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("download complete", slog.String("destination", dest))
	fmt.Printf("Saved dataset to %s\n", dest)
}

// writeCSV writes the header row and then appends the paged records.
func writeCSV(writer *exporter.CSVWriter, path string, page *socrata.Page) error {
	if err := writer.WriteCSV(path, exporter.WriteOptions{Headers: page.Header}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.AppendToCSV(path, page.Rows); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
