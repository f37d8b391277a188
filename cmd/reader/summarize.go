// ABOUTME: summarize command running the full-article summary pipeline on a local page
// ABOUTME: Prints the assembled transcript and optionally the chat backend's reply

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"reader-assist/core/domain"
	"reader-assist/core/errors"
	"reader-assist/pkg/featureflags"
)

// SummarizeInput holds the summarize command's arguments
type SummarizeInput struct {
	File     string
	URL      string
	Complete bool
	Output   string
}

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <file.html>",
		Short: "Build the full-article summary request for a saved page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := SummarizeInput{File: args[0]}
			in.URL, _ = cmd.Flags().GetString("url")
			in.Complete, _ = cmd.Flags().GetBool("complete")
			in.Output, _ = cmd.Flags().GetString("output")
			if err := validateOutput(in.Output); err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				return runSummarize(cmd.Context(), a, in, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().String("url", "", "Original page URL, used to resolve relative links")
	cmd.Flags().Bool("complete", false, "Send the transcript to the chat backend and append the reply")
	cmd.Flags().StringP("output", "o", "", "Output format (json)")
	return cmd
}

func runSummarize(ctx context.Context, a *app, in SummarizeInput, w io.Writer) error {
	if !a.flags.IsEnabled(ctx, featureflags.FullArticleSummaryEnabled) {
		return fmt.Errorf("full-article summaries are disabled")
	}

	f, err := os.Open(in.File)
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	view, err := a.reader.Render(ctx, in.URL, f)
	if err != nil {
		return err
	}

	o, err := a.registry.Mount(view)
	if err != nil {
		return err
	}
	outcome := o.SummarizeFullArticle()
	if outcome.Err != nil {
		return outcome.Err
	}

	transcript := o.Transcript.Current()
	if in.Complete {
		if !a.flags.IsEnabled(ctx, featureflags.ChatEnabled) {
			return fmt.Errorf("chat is disabled")
		}
		reply, err := a.deps.ChatBackend.Complete(ctx, a.settings.Get(), transcript)
		if err != nil {
			return errors.WrapError(err, "complete summary")
		}
		transcript = o.Transcript.Append(reply)
	}

	if in.Output == "json" {
		return printJSON(w, transcript)
	}
	printTranscript(w, view.Title, transcript)
	return nil
}

func printTranscript(w io.Writer, title string, transcript domain.Transcript) {
	fmt.Fprintln(w, pterm.DefaultSection.Sprint(title))
	for _, msg := range transcript {
		fmt.Fprintln(w, pterm.Bold.Sprint(string(msg.Role)))
		fmt.Fprintln(w, msg.Content)
		fmt.Fprintln(w)
	}
}
