// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package directory

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/juju/errors"
)

// Padding is added to the widest cell of every column.
const Padding = 2

// Align positions a cell within its column.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Column describes one table column. Titles are always centered; Align
// applies to the row cells.
type Column struct {
	Title string
	Align Align
}

// Table is a plain text table whose column widths follow its content.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Widths returns the display width of each column: the longest of the
// title and the cells, plus Padding.
func (t *Table) Widths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = utf8.RuneCountInString(col.Title)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if n := utf8.RuneCountInString(cell(row, i)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		widths[i] += Padding
	}
	return widths
}

// Render writes the header, a dashed separator and one line per row.
func (t *Table) Render(w io.Writer) error {
	widths := t.Widths()
	var buf strings.Builder

	fields := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		fields[i] = justify(col.Title, widths[i], AlignCenter)
	}
	writeLine(&buf, fields)

	for i := range t.Columns {
		fields[i] = strings.Repeat("-", widths[i])
	}
	writeLine(&buf, fields)

	for _, row := range t.Rows {
		for i, col := range t.Columns {
			fields[i] = justify(cell(row, i), widths[i], col.Align)
		}
		writeLine(&buf, fields)
	}

	_, err := io.WriteString(w, buf.String())
	return errors.Trace(err)
}

func writeLine(buf *strings.Builder, fields []string) {
	buf.WriteString(strings.Join(fields, " "))
	buf.WriteByte('\n')
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// justify pads s to width. Centering puts the odd space on the right.
func justify(s string, width int, align Align) string {
	space := width - utf8.RuneCountInString(s)
	if space <= 0 {
		return s
	}
	left := 0
	if align == AlignCenter {
		left = space / 2
	}
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", space-left)
}

var topicColumns = []Column{
	{Title: "Topic", Align: AlignLeft},
	{Title: "#SUB", Align: AlignCenter},
	{Title: "Freq(Hz)", Align: AlignCenter},
	{Title: "Echo", Align: AlignCenter},
}

// TopicTable builds the listing table for the topics.
func TopicTable(topics []Topic) *Table {
	rows := make([][]string, len(topics))
	for i, topic := range topics {
		rows[i] = []string{
			topic.Name(),
			fmt.Sprintf("%d", topic.NodeCount()),
			fmt.Sprintf("%.1f", topic.Frequency()),
			fmt.Sprintf("%t", topic.CanEcho()),
		}
	}
	return &Table{Columns: topicColumns, Rows: rows}
}

// WriteTopics writes the listing table for the topics to w.
func WriteTopics(w io.Writer, topics []Topic) error {
	return errors.Trace(TopicTable(topics).Render(w))
}
