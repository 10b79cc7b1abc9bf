package formatter

import (
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
	th "github.com/desertthunder/jukebox/internal/testing"
)

func sampleResults() Results {
	return Results{
		Query: "daft punk",
		Videos: []models.Video{
			{ID: "abc123", Title: "Around the World", Thumbnail: "https://i.ytimg.com/vi/abc123/default.jpg"},
			{ID: "def456", Title: "One More Time [Official Video]"},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleResults())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "ID,Title,Thumbnail,URL" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if records[1][3] != "https://www.youtube.com/watch?v=abc123" {
			t.Errorf("unexpected URL %q", records[1][3])
		}
		if records[2][2] != "" {
			t.Errorf("expected empty thumbnail, got %q", records[2][2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleResults())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# daft punk",
			"**Results**: 2",
			"1. [Around the World](https://www.youtube.com/watch?v=abc123)",
			"![abc123](https://i.ytimg.com/vi/abc123/default.jpg)",
			`2. [One More Time \[Official Video\]]`,
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "![def456]") {
			t.Error("expected no image for video without thumbnail")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleResults())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"Query: daft punk", "Results: 2", "1. Around the World [abc123]"} {
			if !strings.Contains(output, want) {
				t.Errorf("text missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("empty results", func(t *testing.T) {
		data, err := ExportToText(Results{Query: "nothing"})
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		if !strings.Contains(string(data), "Results: 0") {
			t.Errorf("expected zero count, got %s", data)
		}
	})
}

func TestExport(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", "Query: daft punk"},
		{"text", "Query: daft punk"},
		{"CSV", "ID,Title,Thumbnail,URL"},
		{"markdown", "# daft punk"},
		{"md", "# daft punk"},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			data, err := Export(sampleResults(), tt.format)
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("expected %q in output, got:\n%s", tt.want, data)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		_, err := Export(sampleResults(), "xml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	if err := WriteExport(sampleResults(), FormatCSV, path); err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}

	th.AssertFileExists(t, path)
	if content := th.MustReadFile(t, path); !strings.Contains(content, "abc123") {
		t.Errorf("expected exported rows, got %s", content)
	}

	if err := WriteExport(sampleResults(), "xml", path); err == nil {
		t.Error("expected error for unknown format")
	}
}
