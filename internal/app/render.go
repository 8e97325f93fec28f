// Package app - render.go defines the tagged result forms a command can
// choose for human output, and the table renderer behind them. Commands pick
// a variant explicitly; the reporter never infers one from the result shape.
package app

import (
	"fmt"
	"strings"
)

// RenderKind tags the human-output variant of a command result.
type RenderKind int

const (
	// RenderEmpty prints a "no results" message.
	RenderEmpty RenderKind = iota
	// RenderRowSet prints a single table.
	RenderRowSet
	// RenderTableSet prints several named tables.
	RenderTableSet
	// RenderMessage prints free-form text.
	RenderMessage
)

// Column describes one table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// RowSet is an ordered set of rows under column metadata.
type RowSet struct {
	Columns []Column
	Rows    []map[string]any
}

// NamedRowSet pairs a logical table name with its rows.
type NamedRowSet struct {
	Name string
	Rows RowSet
}

// RenderResult is the tagged union of human-output forms.
type RenderResult struct {
	Kind    RenderKind
	Message string
	Rows    RowSet
	Tables  []NamedRowSet
}

// EmptyResult builds a RenderEmpty with the given message, falling back to
// the catalog default when empty.
func EmptyResult(message string) RenderResult {
	if message == "" {
		message = Message("noResults")
	}
	return RenderResult{Kind: RenderEmpty, Message: message}
}

// MessageResult builds a RenderMessage.
func MessageResult(text string) RenderResult {
	return RenderResult{Kind: RenderMessage, Message: text}
}

// renderRowSet formats a RowSet as an aligned table with a styled header.
func renderRowSet(rs RowSet) string {
	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = len(col.Label)
	}
	cells := make([][]string, len(rs.Rows))
	for r, row := range rs.Rows {
		cells[r] = make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			v := ""
			if raw, ok := row[col.Key]; ok && raw != nil {
				v = fmt.Sprintf("%v", raw)
			}
			cells[r][i] = v
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}

	var sb strings.Builder
	for i, col := range rs.Columns {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(Styles.Header.Render(pad(col.Label, widths[i])))
	}
	sb.WriteByte('\n')
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(Styles.Dim.Render(strings.Repeat("─", w)))
	}
	for _, row := range cells {
		sb.WriteByte('\n')
		for i, v := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(pad(v, widths[i]))
		}
	}
	return sb.String()
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
