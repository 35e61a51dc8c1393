package cmd

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/s0up4200/nina/nina"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableView describes the table rendering of a list
type tableView struct {
	headers []string
	aligns  []columnAlignment
	rows    [][]string
}

func renderTable(view tableView) string {
	columns := len(view.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range view.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range view.rows {
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

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(view.aligns) && view.aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func releaseTable(releases []nina.Release) tableView {
	rows := make([][]string, 0, len(releases))
	for _, r := range releases {
		published := r.Datetime
		if t := r.PublishedAt(); !t.IsZero() {
			published = t.Format("2006-01-02")
		}
		rows = append(rows, []string{
			r.PublicKey,
			r.Metadata.Properties.Artist,
			r.Metadata.Properties.Title,
			published,
			strconv.Itoa(len(r.Metadata.Properties.Files)),
		})
	}
	return tableView{
		headers: []string{"Key", "Artist", "Title", "Published", "Tracks"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		rows:    rows,
	}
}

func hubTable(hubs []nina.Hub) tableView {
	rows := make([][]string, 0, len(hubs))
	for _, h := range hubs {
		created := h.Datetime
		if t := h.CreatedAt(); !t.IsZero() {
			created = t.Format("2006-01-02")
		}
		rows = append(rows, []string{h.Handle, h.DisplayName, h.PublicKey, created})
	}
	return tableView{
		headers: []string{"Handle", "Name", "Key", "Created"},
		rows:    rows,
	}
}

func exchangeTable(exchanges []nina.Exchange) tableView {
	rows := make([][]string, 0, len(exchanges))
	for _, e := range exchanges {
		kind := "buy"
		if e.IsSale {
			kind = "sale"
		}
		status := "open"
		switch {
		case e.Cancelled:
			status = "cancelled"
		case e.IsCompleted():
			status = "completed"
		}
		rows = append(rows, []string{e.PublicKey, kind, e.Release, string(e.Price()), status})
	}
	return tableView{
		headers: []string{"Key", "Type", "Release", "Price", "Status"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		rows:    rows,
	}
}

func postTable(posts []nina.Post) tableView {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{p.PublicKey, p.Title, p.PublishedThroughHub, p.Datetime})
	}
	return tableView{
		headers: []string{"Key", "Title", "Hub", "Published"},
		rows:    rows,
	}
}

func keyTable(header string, keys []string) tableView {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k})
	}
	return tableView{headers: []string{header}, rows: rows}
}
