package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Laadnanimoustapha/DevMatch-AI/internal/analyzer"
	"github.com/Laadnanimoustapha/DevMatch-AI/internal/cache"
	"github.com/Laadnanimoustapha/DevMatch-AI/internal/output"
	"github.com/Laadnanimoustapha/DevMatch-AI/internal/progress"
	"github.com/Laadnanimoustapha/DevMatch-AI/internal/scanner"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/config"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

func main() {
	app := &cli.App{
		Name:    "devmatch",
		Usage:   "Heuristic code quality analysis for multi-language projects",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "output format (text, json, yaml, toon, markdown)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write output to file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "disable analysis result caching",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "show per-file issues and top suggestions",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			initCmd(),
			configCmd(),
			languagesCmd(),
			cacheCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze code quality of files or directories",
		ArgsUsage: "[paths...]",
		Action:    runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg := loadConfig(c)
	scan := scanner.NewScanner(cfg)

	var files []string
	for _, path := range getPaths(c) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("failed to access %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := scan.ScanDir(abs)
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", path, err)
			}
			files = append(files, found...)
		} else if ok, _ := scan.ScanFile(abs); ok {
			files = append(files, abs)
		}
	}

	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	files, skipped := scan.FilterBySize(files, cfg.Analysis.MaxFileSize)
	if skipped > 0 && c.Bool("verbose") {
		color.Yellow("Skipped %d files over the size limit", skipped)
	}

	opts := []analyzer.Option{analyzer.WithConfig(cfg)}
	if cfg.Cache.Enabled && !c.Bool("no-cache") {
		if cc, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true); err == nil {
			opts = append(opts, analyzer.WithCache(cc))
		}
	}

	checker := analyzer.NewChecker(opts...)
	defer checker.Close()

	tracker := progress.NewTracker("Analyzing code quality...", len(files))
	analysis := checker.AnalyzeProjectWithProgress(files, tracker.Tick)
	tracker.FinishSuccess()

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(analysis)
	}

	cwd, _ := os.Getwd()
	rows := make([][]string, 0, len(analysis.Files))
	for _, f := range analysis.Files {
		issueCell := fmt.Sprintf("%d", len(f.Issues))
		if sev := worstSeverity(f.Issues); sev != "" {
			issueCell = output.SeverityColor(sev, issueCell)
		}

		rows = append(rows, []string{
			truncate(displayPath(cwd, f.Path), 48),
			f.Language,
			output.ScoreColor(f.QualityScore, fmt.Sprintf("%d", f.QualityScore)),
			string(f.Complexity),
			issueCell,
			string(f.Maintainability),
		})
	}

	summary := analysis.Summary
	footer := []string{
		fmt.Sprintf("%d analyzed, %d failed", summary.AnalyzedFiles, summary.FailedFiles),
		"",
		fmt.Sprintf("avg %.1f", summary.AverageScore),
		"",
		fmt.Sprintf("%d issues", summary.TotalIssues),
		"",
	}

	table := output.NewTable(
		"Code Quality Report",
		[]string{"File", "Language", "Score", "Complexity", "Issues", "Maintainability"},
		rows, footer, analysis)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if c.Bool("verbose") && formatter.Format() == output.FormatText {
		printVerbose(formatter, analysis, cwd)
	}

	return nil
}

// printVerbose writes the project-wide suggestions and per-file issue
// detail after the summary table.
func printVerbose(formatter *output.Formatter, analysis *models.ProjectAnalysis, cwd string) {
	w := formatter.Writer()

	if len(analysis.Summary.TopSuggestions) > 0 {
		formatter.Info("Top suggestions:")
		for _, s := range analysis.Summary.TopSuggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
		fmt.Fprintln(w)
	}

	for _, f := range analysis.Files {
		if len(f.Issues) == 0 {
			continue
		}
		formatter.Info("%s", displayPath(cwd, f.Path))
		for _, issue := range f.Issues {
			fmt.Fprintf(w, "  [%s] %s: %s\n",
				output.SeverityColor(string(issue.Severity), string(issue.Severity)),
				issue.Type, issue.Description)
		}
		fmt.Fprintln(w)
	}
}

func languagesCmd() *cli.Command {
	return &cli.Command{
		Name:   "languages",
		Usage:  "List supported languages and their analysis depth",
		Action: runLanguagesCmd,
	}
}

func runLanguagesCmd(c *cli.Context) error {
	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	supported := analyzer.SupportedLanguages()
	rows := make([][]string, 0, len(supported))
	for _, s := range supported {
		tier := "basic"
		if s.Deep {
			tier = "deep"
		}
		rows = append(rows, []string{"." + s.Extension, s.Language, tier})
	}

	table := output.NewTable(
		"Supported Languages",
		[]string{"Extension", "Language", "Analysis"},
		rows, nil, supported)
	return formatter.Output(table)
}

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the analysis result cache",
		Subcommands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Remove all cached analysis results",
				Action: runCacheClearCmd,
			},
		},
	}
}

func runCacheClearCmd(c *cli.Context) error {
	cfg := loadConfig(c)
	cc, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return err
	}
	if err := cc.Clear(); err != nil {
		return err
	}
	color.Green("Cache cleared")
	return nil
}

// loadConfig loads the file named by --config, falling back to the
// standard search locations.
func loadConfig(c *cli.Context) *config.Config {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err == nil {
			return cfg
		}
		color.Yellow("Could not load config %s: %v, using defaults", path, err)
	}
	return config.LoadOrDefault()
}

// worstSeverity returns the highest severity among issues, or "" when
// there are none.
func worstSeverity(issues []models.Issue) string {
	rank := map[models.Severity]int{
		models.SeverityLow:    1,
		models.SeverityMedium: 2,
		models.SeverityHigh:   3,
	}
	worst := ""
	best := 0
	for _, issue := range issues {
		if r := rank[issue.Severity]; r > best {
			best = r
			worst = string(issue.Severity)
		}
	}
	return worst
}

// displayPath shortens a path relative to the working directory when it
// stays inside it.
func displayPath(cwd, path string) string {
	if cwd == "" {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
