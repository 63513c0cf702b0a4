// Command occ translates Objective-C source into Swift.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/occ2swift/occ/internal/config"
	"github.com/occ2swift/occ/internal/diagnostics"
	"github.com/occ2swift/occ/internal/driver"
	"github.com/occ2swift/occ/internal/tracing"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("occ", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML driver config")
	outDir := fs.String("out", "", "output directory (defaults to alongside each input file)")
	watch := fs.String("watch", "", "watch this directory and re-translate changed files")
	include := fs.String("include", "", "comma-separated glob patterns; only matching files are translated")
	exclude := fs.String("exclude", "", "comma-separated glob patterns to skip")
	workers := fs.Int("workers", 0, "maximum concurrent translation-unit workers (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	shutdown, err := tracing.Setup(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer shutdown(context.Background())

	d, err := driver.New(cfg)
	if err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := expandPaths(paths, splitCSV(*include), splitCSV(*exclude))
	if err != nil {
		return err
	}

	if err := translateAndReport(d, cfg, files, *outDir, *workers); err != nil {
		return err
	}

	if *watch != "" {
		return runWatch(d, cfg, *watch, *outDir, *workers, splitCSV(*include), splitCSV(*exclude))
	}
	return nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func expandPaths(paths, include, exclude []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := driver.SelectFiles(p, include, exclude)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, p)
	}
	return files, nil
}

func translateAndReport(d *driver.Driver, cfg *config.Config, files []string, outDir string, workers int) error {
	start := time.Now()
	result, err := d.Run(context.Background(), files, workers)
	if err != nil {
		return err
	}

	for _, diag := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, styleDiagnostic(diag))
	}

	for file, swift := range result.Outputs {
		dest := outputPath(cfg, file, outDir)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(swift), 0o644); err != nil {
			return err
		}
	}

	printSummary(len(files), result.Diagnostics, time.Since(start))
	if result.HasErrors() {
		return fmt.Errorf("translation failed with errors")
	}
	return nil
}

func outputPath(cfg *config.Config, sourcePath, outDir string) string {
	ext := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(filepath.Base(sourcePath), ext)
	dest := base + cfg.ExtensionFor(ext)
	if outDir == "" {
		return filepath.Join(filepath.Dir(sourcePath), dest)
	}
	return filepath.Join(outDir, dest)
}

// isColorTTY gates styled diagnostic output the way the teacher's own
// term builtins do: a real terminal, Cygwin's included.
func isColorTTY() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
)

func styleDiagnostic(d *diagnostics.Error) string {
	line := d.Error()
	if !isColorTTY() {
		return line
	}
	if d.Severity == diagnostics.SeverityError {
		return errorStyle.Render(line)
	}
	return warningStyle.Render(line)
}

func printSummary(fileCount int, diags []*diagnostics.Error, elapsed time.Duration) {
	errCount, warnCount := 0, 0
	for _, d := range diags {
		if d.Severity == diagnostics.SeverityError {
			errCount++
		} else {
			warnCount++
		}
	}
	summary := fmt.Sprintf("%s files, %s errors, %s warnings, %s",
		humanize.Comma(int64(fileCount)), humanize.Comma(int64(errCount)),
		humanize.Comma(int64(warnCount)), elapsed.Round(time.Millisecond))
	if isColorTTY() && errCount == 0 {
		summary = successStyle.Render(summary)
	}
	fmt.Println(summary)
}

func runWatch(_ *driver.Driver, cfg *config.Config, dir, outDir string, workers int, include, exclude []string) error {
	w, err := driver.NewWatcher(500*time.Millisecond, func(changed []string) {
		files, err := driver.SelectFiles(dir, include, exclude)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		// A changed file can invalidate cross-file graph state (a
		// renamed superclass, a dropped property), and the intention
		// graph has no incremental-removal story, so each re-run starts
		// from a fresh Driver rather than reusing one whose graph can
		// only grow.
		_ = changed
		fresh, err := driver.New(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if err := translateAndReport(fresh, cfg, files, outDir, workers); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(dir); err != nil {
		return err
	}

	fmt.Printf("watching %s for changes (ctrl-c to stop)\n", dir)
	select {}
}
