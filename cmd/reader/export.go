// ABOUTME: export command writing saved pages' reader views as markdown
// ABOUTME: Pages render concurrently on the render pool; file names come from article titles

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"reader-assist/core/reader"
	"reader-assist/core/workers"
	"reader-assist/pkg/featureflags"
)

// ExportInput holds the export command's arguments
type ExportInput struct {
	Files []string
	URL   string
	// Out is a directory, or a .md file path when exporting one page
	Out     string
	Workers int
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.html>...",
		Short: "Export saved pages as markdown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ExportInput{Files: args}
			in.URL, _ = cmd.Flags().GetString("url")
			in.Out, _ = cmd.Flags().GetString("out")
			in.Workers, _ = cmd.Flags().GetInt("workers")
			return withApp(cmd, func(a *app) error {
				paths, err := runExport(cmd.Context(), a, in)
				for _, path := range paths {
					fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("Markdown written to %s", path))
				}
				return err
			})
		},
	}
	cmd.Flags().String("url", "", "Original page URL, used to resolve relative links (single page only)")
	cmd.Flags().String("out", ".", "Output directory, or .md file for a single page")
	cmd.Flags().Int("workers", 0, "Pages rendered in parallel (default 4)")
	return cmd
}

// runExport renders the pages and returns the paths written. Pages that
// fail are reported together after the rest are written.
func runExport(ctx context.Context, a *app, in ExportInput) ([]string, error) {
	if !a.flags.IsEnabled(ctx, featureflags.MarkdownExportEnabled) {
		return nil, fmt.Errorf("markdown export is disabled")
	}

	out := in.Out
	if out == "" {
		out = "."
	}
	singleFile := strings.EqualFold(filepath.Ext(out), ".md")
	if singleFile && len(in.Files) > 1 {
		return nil, fmt.Errorf("--out must be a directory when exporting %d pages", len(in.Files))
	}
	if in.URL != "" && len(in.Files) > 1 {
		return nil, fmt.Errorf("--url applies to a single page")
	}

	pool := workers.NewRenderPool(a.reader, a.logger, workers.WorkerConfig{MaxWorkers: in.Workers})
	if err := pool.Start(); err != nil {
		return nil, err
	}
	defer pool.Stop()

	jobs := make([]workers.RenderJob, 0, len(in.Files))
	for _, file := range in.Files {
		file := file
		jobs = append(jobs, workers.RenderJob{
			Name: file,
			URL:  in.URL,
			Open: func() (io.ReadCloser, error) {
				f, err := os.Open(file)
				if err != nil {
					return nil, fmt.Errorf("open page: %w", err)
				}
				return f, nil
			},
		})
	}

	results, err := pool.RenderAll(ctx, jobs)
	if err != nil {
		return nil, err
	}

	var (
		paths  []string
		failed []string
	)
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", r.Job.Name, r.Err))
			continue
		}
		path := out
		if !singleFile {
			path = filepath.Join(out, reader.MarkdownFileName(r.View.Title))
		}
		if err := writeFile(path, strings.NewReader(r.View.Markdown)); err != nil {
			failed = append(failed, err.Error())
			continue
		}
		paths = append(paths, path)
	}

	if len(failed) > 0 {
		return paths, fmt.Errorf("export failed for %d page(s): %s", len(failed), strings.Join(failed, "; "))
	}
	return paths, nil
}

func writeFile(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
