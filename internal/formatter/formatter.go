// package formatter provides functions to export search results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Results is a search query together with the videos it returned.
type Results struct {
	Query  string
	Videos []models.Video
}

// ExportToCSV converts Results to CSV format with columns: ID, Title, Thumbnail, URL
func ExportToCSV(results Results) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Thumbnail", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range results.Videos {
		record := []string{video.ID, video.Title, video.Thumbnail, video.WatchURL()}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts Results to a Markdown list with linked titles and thumbnails
func ExportToMarkdown(results Results) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", results.Query)
	fmt.Fprintf(&buf, "**Results**: %d\n\n", len(results.Videos))

	for i, video := range results.Videos {
		fmt.Fprintf(&buf, "%d. [%s](%s)", i+1, escapeMarkdown(video.Title), video.WatchURL())
		if video.Thumbnail != "" {
			fmt.Fprintf(&buf, "\n   ![%s](%s)", video.ID, video.Thumbnail)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts Results to plain text format
func ExportToText(results Results) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Query: %s\n", results.Query)
	fmt.Fprintf(&buf, "Results: %d\n\n", len(results.Videos))

	for i, video := range results.Videos {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", i+1, video.Title, video.ID)
	}

	return buf.Bytes(), nil
}

// Export renders results in the named format.
func Export(results Results, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return ExportToText(results)
	case FormatCSV:
		return ExportToCSV(results)
	case FormatMarkdown, "md":
		return ExportToMarkdown(results)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want text, csv or markdown)", shared.ErrInvalidFlag, format)
	}
}

// WriteExport renders results and writes them to path.
func WriteExport(results Results, format, path string) error {
	data, err := Export(results, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	return nil
}

var markdownEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
