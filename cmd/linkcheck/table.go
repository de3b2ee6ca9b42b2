package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	statusOK        = "ok"
	statusUnmatched = "UNMATCHED"
)

// column describes one table column. Transform, when set, styles each cell.
type column struct {
	Header    string
	Align     text.Align
	Transform text.Transformer
}

// renderTable draws rows under columns. Headers keep their case.
func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.Header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       c.Align,
			AlignHeader: text.AlignLeft,
			Transformer: c.Transform,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

// colorStatus paints unmatched links red and healthy ones green.
func colorStatus(val any) string {
	s := fmt.Sprint(val)
	if s == statusUnmatched {
		return text.Colors{text.FgRed, text.Bold}.Sprint(s)
	}
	return text.FgGreen.Sprint(s)
}
