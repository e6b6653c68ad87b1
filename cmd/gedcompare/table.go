package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gedcompare/internal/matching"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

type tableSpec struct {
	title   string
	headers []string
	aligns  []columnAlignment
	rows    [][]string
}

func renderTable(spec tableSpec) string {
	columns := len(spec.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if spec.title != "" {
		tw.SetTitle(spec.title)
	}

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = spec.headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range spec.rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(spec.aligns) && spec.aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func statusColor(status matching.Status) text.Colors {
	switch status {
	case matching.StatusDifferent:
		return text.Colors{text.FgYellow}
	case matching.StatusMatched:
		return text.Colors{text.FgGreen}
	default:
		return text.Colors{text.FgRed}
	}
}

func statusLabel(status matching.Status, colorize bool) string {
	label := string(status)
	if !colorize {
		return label
	}
	return statusColor(status).Sprint(label)
}
