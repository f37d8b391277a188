// ABOUTME: settings command showing and updating the persisted reader settings
// ABOUTME: Updates are partial and clamped the same way the API clamps them

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"reader-assist/api/dto/requests"
	"reader-assist/core/domain"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change reader settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if err := validateOutput(output); err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				return printSettings(cmd.OutOrStdout(), a.settings.Get().Masked(), output)
			})
		},
	}
	show.Flags().StringP("output", "o", "", "Output format (json)")

	set := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := settingsRequestFromFlags(cmd)
			patch, err := req.ToPatch()
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				updated := a.settings.Set(patch)
				fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintln("Settings saved"))
				return printSettings(cmd.OutOrStdout(), updated.Masked(), "")
			})
		},
	}
	set.Flags().String("font-family", "", "Font family")
	set.Flags().Int("font-size", 0, "Font size in px (12-40)")
	set.Flags().String("line-spacing", "", "Line spacing: 1.4em, 1.8em or 2.4em")
	set.Flags().Int("page-width", 0, "Page width in px (400-1900)")
	set.Flags().String("translate-service", "", "google_translate, tencent_translate or openai_translate")
	set.Flags().String("openai-key", "", "OpenAI API key")
	set.Flags().String("model", "", "Chat model")
	set.Flags().String("summary-prompt", "", "Custom summary prompt; pass an empty value to restore the default")

	cmd.AddCommand(show, set)
	return cmd
}

// settingsRequestFromFlags fills only the fields whose flags were given
func settingsRequestFromFlags(cmd *cobra.Command) requests.UpdateSettingsRequest {
	var req requests.UpdateSettingsRequest
	flags := cmd.Flags()

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	intFlag := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}

	req.FontFamily = stringFlag("font-family")
	req.FontSize = intFlag("font-size")
	req.LineSpacing = stringFlag("line-spacing")
	req.PageWidth = intFlag("page-width")
	req.TranslateService = stringFlag("translate-service")
	req.OpenAIKey = stringFlag("openai-key")
	req.Model = stringFlag("model")
	req.SummaryPrompt = stringFlag("summary-prompt")
	return req
}

func printSettings(w io.Writer, s domain.Settings, output string) error {
	if output == "json" {
		return printJSON(w, s)
	}

	prompt := s.SummaryPrompt
	if prompt == "" {
		prompt = "(default)"
	}
	key := s.OpenAIKey
	if key == "" {
		key = "-"
	}

	rows := pterm.TableData{{"Setting", "Value"}}
	rows = append(rows, []string{"Font family", s.FontFamily})
	rows = append(rows, []string{"Font size", strconv.Itoa(s.FontSize)})
	rows = append(rows, []string{"Line spacing", fmt.Sprintf("%s (%s)", s.LineSpacing.Label(), s.LineSpacing)})
	rows = append(rows, []string{"Page width", strconv.Itoa(s.PageWidth)})
	rows = append(rows, []string{"Translate service", string(s.TranslateService)})
	rows = append(rows, []string{"OpenAI key", key})
	rows = append(rows, []string{"Model", s.Model})
	rows = append(rows, []string{"Summary prompt", prompt})

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
