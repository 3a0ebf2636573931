// package formatter exports board snapshots to various formats (CSV, Markdown, plain text, JSON, YAML)
// and reads item fixtures back from YAML.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported export format.
func Formats() []Format {
	return []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON, FormatYAML}
}

// ParseFormat accepts a format name or a common alias ("markdown", "text", "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, s)
	}
}

// Column is one stage of an exported board.
type Column struct {
	Stage string        `json:"stage" yaml:"stage"`
	Items []kanban.Item `json:"items" yaml:"items"`
}

// BoardExport is a snapshot of a board's layout.
type BoardExport struct {
	Kind       kanban.Kind   `json:"kind" yaml:"kind"`
	ExportedAt time.Time     `json:"exported_at" yaml:"exported_at"`
	Columns    []Column      `json:"columns" yaml:"columns"`
	Unassigned []kanban.Item `json:"unassigned,omitempty" yaml:"unassigned,omitempty"`
}

// NewBoardExport snapshots the current layout of board.
func NewBoardExport(board *kanban.Board) *BoardExport {
	layout := board.Layout()
	export := &BoardExport{
		Kind:       board.Kind(),
		ExportedAt: time.Now().UTC(),
		Columns:    make([]Column, 0, len(layout.Stages)),
		Unassigned: layout.Unassigned,
	}
	for _, stage := range layout.Stages {
		export.Columns = append(export.Columns, Column{Stage: stage, Items: layout.Column(stage)})
	}
	return export
}

// Count returns the number of items in the export, unassigned included.
func (e *BoardExport) Count() int {
	n := len(e.Unassigned)
	for _, col := range e.Columns {
		n += len(col.Items)
	}
	return n
}

func (e *BoardExport) title() string {
	return e.Kind.Label() + " pipeline"
}

func salaryText(item kanban.Item) string {
	if item.Salary == nil {
		return ""
	}
	return item.Salary.String()
}

// ExportToCSV converts a BoardExport to CSV format with columns: Stage, ID, Title, Subtitle, Tags, Salary
//
// Rows follow column order; unassigned items come last with their raw stage.
func ExportToCSV(export *BoardExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Stage", "ID", "Title", "Subtitle", "Tags", "Salary"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	write := func(stage string, item kanban.Item) error {
		record := []string{stage, item.ID, item.Title, item.Subtitle, strings.Join(item.Tags, "; "), salaryText(item)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	}

	for _, col := range export.Columns {
		for _, item := range col.Items {
			if err := write(col.Stage, item); err != nil {
				return nil, err
			}
		}
	}
	for _, item := range export.Unassigned {
		if err := write(item.Stage, item); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a BoardExport to Markdown with one section per stage
func ExportToMarkdown(export *BoardExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.title())
	fmt.Fprintf(&buf, "**Items**: %d\n", export.Count())
	fmt.Fprintf(&buf, "**Exported**: %s\n\n", export.ExportedAt.Format(time.RFC3339))

	section := func(heading string, items []kanban.Item) {
		fmt.Fprintf(&buf, "## %s (%d)\n\n", heading, len(items))
		if len(items) == 0 {
			buf.WriteString("_No items_\n\n")
			return
		}
		for _, item := range items {
			fmt.Fprintf(&buf, "- **%s**", item.Title)
			if item.Subtitle != "" {
				fmt.Fprintf(&buf, " (%s)", item.Subtitle)
			}
			if len(item.Tags) > 0 {
				fmt.Fprintf(&buf, " `%s`", strings.Join(item.Tags, "`, `"))
			}
			if s := salaryText(item); s != "" {
				fmt.Fprintf(&buf, " %s", s)
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	for _, col := range export.Columns {
		section(col.Stage, col.Items)
	}
	if len(export.Unassigned) > 0 {
		section("Unassigned", export.Unassigned)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a BoardExport to plain text format
func ExportToText(export *BoardExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Board: %s\n", export.Kind.Plural())
	fmt.Fprintf(&buf, "Items: %d\n", export.Count())

	section := func(heading string, items []kanban.Item) {
		fmt.Fprintf(&buf, "\n%s (%d)\n", heading, len(items))
		for i, item := range items {
			if item.Subtitle != "" {
				fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, item.Title, item.Subtitle)
			} else {
				fmt.Fprintf(&buf, "%d. %s\n", i+1, item.Title)
			}
		}
	}

	for _, col := range export.Columns {
		section(col.Stage, col.Items)
	}
	if len(export.Unassigned) > 0 {
		section("Unassigned", export.Unassigned)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a BoardExport to indented JSON
func ExportToJSON(export *BoardExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// ExportToYAML converts a BoardExport to YAML. The output can be read back with [ParseItemsYAML].
func ExportToYAML(export *BoardExport) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(export); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Render encodes export in format.
func Render(export *BoardExport, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	case FormatYAML:
		return ExportToYAML(export)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}
}

// DefaultFilename is {plural}_board.{ext}, e.g. candidates_board.csv.
func DefaultFilename(kind kanban.Kind, format Format) string {
	return fmt.Sprintf("%s_board.%s", strings.ToLower(kind.Plural()), format)
}

// WriteExport renders export and writes it to path, creating parent directories.
//
// Defaults to [DefaultFilename] in the working directory.
func WriteExport(export *BoardExport, format Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(export.Kind, format)
	}

	data, err := Render(export, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return path, nil
}

// itemsDocument accepts both a flat fixture ({kind, items}) and a [BoardExport].
type itemsDocument struct {
	Kind       kanban.Kind   `yaml:"kind"`
	Items      []kanban.Item `yaml:"items"`
	Columns    []Column      `yaml:"columns"`
	Unassigned []kanban.Item `yaml:"unassigned"`
}

// ParseItemsYAML reads items of kind from a YAML fixture or a YAML board export.
//
// Items without a kind inherit the document's kind. Items without a stage get the kind's default
// stage, and items inside a column take the column's stage.
func ParseItemsYAML(data []byte, kind kanban.Kind) ([]kanban.Item, error) {
	var doc itemsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", shared.ErrInvalidInput, err)
	}

	if doc.Kind != "" && doc.Kind != kind {
		return nil, fmt.Errorf("%w: file holds %s items, expected %s", shared.ErrInvalidKind, doc.Kind, kind)
	}

	items := make([]kanban.Item, 0, len(doc.Items))
	items = append(items, doc.Items...)
	for _, col := range doc.Columns {
		for _, item := range col.Items {
			if item.Stage == "" {
				item.Stage = col.Stage
			}
			items = append(items, item)
		}
	}
	items = append(items, doc.Unassigned...)

	for i := range items {
		item := &items[i]
		if item.Kind == "" {
			item.Kind = kind
		}
		if item.Kind != kind {
			return nil, fmt.Errorf("%w: item %d is a %s, expected %s", shared.ErrInvalidKind, i+1, item.Kind, kind)
		}
		if strings.TrimSpace(item.Title) == "" {
			return nil, fmt.Errorf("%w: item %d has no title", shared.ErrInvalidInput, i+1)
		}
		if item.Stage == "" {
			item.Stage = kind.DefaultStage()
		}
	}
	return items, nil
}

// ReadItemsFile loads a YAML fixture from path. See [ParseItemsYAML].
func ReadItemsFile(path string, kind kanban.Kind) ([]kanban.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseItemsYAML(data, kind)
}
