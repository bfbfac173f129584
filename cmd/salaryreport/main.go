// Command salaryreport cleans the salary survey TSV, answers the six
// business questions and writes the cleaned CSV plus the XLSX summary.
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
	input := flag.String("input", "", "salary survey TSV path (defaults to data/downloads/salary_survey_2021.tsv)")
	noExport := flag.Bool("no-export", false, "skip writing the CSV and XLSX artifacts")
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
		paths.SalarySurveyTSV = *input
	}

	data := services.NewDataService(paths, logger, nil)
	reports := services.NewReportService(data, paths, logger, analytics.DogAnalyzerConfig{})

	ctx := context.Background()
	summary, err := reports.SalarySummary(ctx)
	if err != nil {
		logger.Error("analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printSummary(summary)

	if !*noExport {
		csvPath, err := reports.ExportCleanedSurvey(ctx)
		if err != nil {
			logger.Error("cleaned survey export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		xlsxPath, err := reports.ExportSalarySummary(ctx)
		if err != nil {
			logger.Error("summary export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("\nCleaned survey written to %s\n", csvPath)
		fmt.Printf("Summary written to %s\n", xlsxPath)
	}
}

func printSummary(summary analytics.SalarySummary) {
	fmt.Println("Salary Survey Report")
	fmt.Println("====================")

	if r := summary.EngineerMedian; r != nil {
		fmt.Printf("1. Median US software engineer salary: $%.0f (%d records)\n", r.Median, r.Count)
	} else {
		fmt.Println("1. Median US software engineer salary: unavailable")
	}

	if r := summary.HighestState; r != nil {
		fmt.Printf("2. Highest-paying state for tech workers: %s ($%.0f mean, %d records)\n",
			r.State, r.MeanSalary, r.Count)
	} else {
		fmt.Println("2. Highest-paying state for tech workers: unavailable")
	}

	if r := summary.ExperienceSlope; r != nil {
		fmt.Printf("3. Salary increase per year of experience: $%.0f (r=%.3f, %d records)\n",
			r.SlopePerYear, r.PearsonR, r.Count)
	} else {
		fmt.Println("3. Salary increase per year of experience: unavailable")
	}

	if r := summary.HighestIndustry; r != nil {
		fmt.Printf("4. Highest-paying non-tech industry: %s ($%.0f median, %d records)\n",
			r.Industry, r.MedianSalary, r.Count)
	} else {
		fmt.Println("4. Highest-paying non-tech industry: unavailable")
	}

	if r := summary.GenderGap; r != nil {
		fmt.Printf("5. Tech gender pay gap: %.1f%% (men $%.0f / women $%.0f)\n",
			r.GapPercent, r.MenMedian, r.WomenMedian)
	} else {
		fmt.Println("5. Tech gender pay gap: unavailable")
	}

	if r := summary.EducationImpact; r != nil {
		fmt.Printf("6. Master's premium over bachelor's: %.1f%% ($%.0f difference)\n",
			r.PercentIncrease, r.Difference)
	} else {
		fmt.Println("6. Master's premium over bachelor's: unavailable")
	}
}
