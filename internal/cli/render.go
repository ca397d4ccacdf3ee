// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/allie-tui/internal/markdown"
	"github.com/jeranaias/allie-tui/internal/ui/components"
)

// RenderFormats lists the output formats of "allie render".
var RenderFormats = []string{"html", "term", "json", "yaml", "markdown", "text"}

func newRenderCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Render assistant markdown",
		Long: `Render text with the assistant's markdown subset.

Reads FILE, or standard input when FILE is omitted or "-". Supported
constructs are headings (#, ##, ###), **bold**, *italic*, fenced code,
` + "`inline code`" + `, "* " lists and "1. " lists. Everything else is literal text.

Formats:
  html       classified HTML elements, text escaped
  term       styled terminal output
  json       element tree as JSON
  yaml       element tree as YAML
  markdown   canonical markdown for the same elements
  text       plain text without markup`,
		Example: `  echo '**Hello** *world*' | allie render --format html
  allie render answer.md --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, err := readSource(app.In, path)
			if err != nil {
				return err
			}
			return app.render(text, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: "+strings.Join(RenderFormats, ", "))
	return cmd
}

func readSource(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}

func (a *App) render(text, format string) error {
	doc := markdown.Render(text)

	switch strings.ToLower(format) {
	case "html":
		fmt.Fprintln(a.Out, doc.HTML())
	case "term":
		width := outputWidth(a.Out, a.Config.UI.Width)
		fmt.Fprintln(a.Out, components.NewMarkdownView(themeFor(a.Out), width).Render(doc))
	case "json":
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc.Elements()); err != nil {
			return errors.Wrap(err, "failed to encode json")
		}
	case "yaml":
		enc := yaml.NewEncoder(a.Out)
		enc.SetIndent(2)
		if err := enc.Encode(doc.Elements()); err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
		return enc.Close()
	case "markdown", "md":
		fmt.Fprintln(a.Out, doc.Markdown())
	case "text", "txt":
		fmt.Fprintln(a.Out, doc.PlainText())
	default:
		return &UsageError{Msg: fmt.Sprintf("unknown format %q (want one of: %s)", format, strings.Join(RenderFormats, ", "))}
	}
	return nil
}
