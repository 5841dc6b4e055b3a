package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/review-assistant/internal/analyzer"
	"github.com/sevigo/review-assistant/internal/app"
	"github.com/sevigo/review-assistant/internal/config"
	"github.com/sevigo/review-assistant/internal/core"
	"github.com/sevigo/review-assistant/internal/gitutil"
)

var (
	repoURL     string
	rulesPath   string
	withSuggest bool
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a file or directory with the review assistant's checks",
	Long: `Analyze a file or directory with the review assistant's checks.

Without --repo, the positional argument is a local file or directory.
With --repo, the repository is cloned into a temporary directory first.

Examples:
  review-cli analyze lib/handlers.py
  review-cli analyze --rules .review-assistant.yml ./src
  review-cli analyze --repo https://github.com/acme/widgets.git
  review-cli analyze --suggest main.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	analyzeCmd.Flags().StringVar(&repoURL, "repo", "", "HTTPS URL of a git repository to clone and analyze")
	analyzeCmd.Flags().StringVar(&rulesPath, "rules", ".review-assistant.yml", "Path to the yaml rule configuration")
	analyzeCmd.Flags().BoolVar(&withSuggest, "suggest", false, "Generate an AI suggestion for every finding")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if repoURL == "" && len(args) == 0 {
		return fmt.Errorf("either a path argument or --repo is required")
	}

	rules, err := config.LoadRuleConfig(rulesPath)
	if err != nil && !errors.Is(err, config.ErrRuleConfigNotFound) {
		return err
	}

	root := ""
	if repoURL != "" {
		cloner := gitutil.NewCloner(slog.Default())
		path, cleanup, cloneErr := cloner.CloneTemp(ctx, repoURL, viper.GetString("GIT_TOKEN"))
		if cloneErr != nil {
			return cloneErr
		}
		defer cleanup()
		root = path
	} else {
		root = args[0]
	}

	a := analyzer.New(rules)

	var suggester core.Suggester
	if withSuggest {
		cfg, cfgErr := config.LoadConfig()
		if cfgErr != nil {
			return fmt.Errorf("failed to load configuration for --suggest: %w", cfgErr)
		}
		suggester, err = app.NewSuggester(ctx, cfg, slog.Default())
		if err != nil {
			return err
		}
	}

	findings, scanned, err := analyzeTree(ctx, a, rules, root, suggester)
	if err != nil {
		return err
	}

	printReport(root, findings, scanned)
	return nil
}

// analyzeTree walks root (or reads it directly when it is a file), runs the
// analyzer per file, and optionally enriches every finding with a generated
// suggestion, sequentially in detection order.
func analyzeTree(ctx context.Context, a *analyzer.Analyzer, rules *core.RuleConfig, root string, suggester core.Suggester) ([]core.Finding, int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot access %s: %w", root, err)
	}

	var paths []string
	if !info.IsDir() {
		paths = []string{root}
	} else {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if d.Name() == ".git" || excludedDir(rules, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if excludedExt(rules, path) {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	var all []core.Finding
	for _, path := range paths {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, 0, fmt.Errorf("failed to read %s: %w", path, readErr)
		}

		name := path
		if rel, relErr := filepath.Rel(root, path); relErr == nil && rel != "." {
			name = rel
		}

		text := strings.ToValidUTF8(string(raw), "�")
		findings := a.Detect(name, text)

		if suggester != nil {
			for i := range findings {
				suggestion, sErr := suggester.SuggestFix(ctx, findings[i])
				if sErr != nil {
					return nil, 0, sErr
				}
				findings[i].Suggestion = suggestion
			}
		}
		all = append(all, findings...)
	}

	return all, len(paths), nil
}

func excludedDir(rules *core.RuleConfig, name string) bool {
	for _, dir := range rules.ExcludeDirs {
		if name == dir {
			return true
		}
	}
	return false
}

func excludedExt(rules *core.RuleConfig, path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, e := range rules.ExcludeExts {
		if ext == strings.TrimPrefix(e, ".") {
			return true
		}
	}
	return false
}

func printReport(root string, findings []core.Finding, scanned int) {
	titleColor.Printf("Review report for %s\n", root)
	dimColor.Printf("%d file(s) scanned\n\n", scanned)

	if len(findings) == 0 {
		successColor.Println("No issues found.")
		return
	}

	for _, f := range findings {
		switch f.Category {
		case core.CategoryErrorHandling:
			errorColor.Printf("%s:%d [%s] %s\n", f.File, f.Line, f.Category, f.Message)
		default:
			warnColor.Printf("%s:%d [%s] %s\n", f.File, f.Line, f.Category, f.Message)
		}
		dimColor.Printf("    %s\n", strings.TrimSpace(f.Snippet))
		if f.Suggestion != "" {
			fmt.Printf("    suggestion: %s\n", f.Suggestion)
		}
	}

	counts := (&core.Report{Findings: findings}).CountsByCategory()
	fmt.Println()
	boldColor.Printf("%d finding(s):", len(findings))
	for _, cat := range core.Categories() {
		if n := counts[cat]; n > 0 {
			fmt.Printf(" %s=%d", cat, n)
		}
	}
	fmt.Println()
}
