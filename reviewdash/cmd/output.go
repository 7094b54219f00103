package main

import (
	"fmt"
	"io"
	"strconv"

	"reviewdash/reviewdash/controllers"
	"reviewdash/reviewdash/sources/psql/models"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const maxDescriptionWidth = 48

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printMetricsTable(w io.Writer, m *controllers.MetricsSummary) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		{"Total reviews", strconv.FormatInt(m.TotalReviews, 10)},
		{"Unique categories", strconv.FormatInt(m.UniqueCategories, 10)},
		{"Unique work areas", strconv.FormatInt(m.UniqueWorkAreas, 10)},
		{"Training courses", strconv.FormatInt(m.TotalTrainingCourses, 10)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func printCategoryTable(w io.Writer, shares []controllers.CategoryShare) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Category", "Reviews", "Share", "Insight"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for i, s := range shares {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Name,
			strconv.FormatInt(s.Value, 10),
			fmt.Sprintf("%d%%", s.Percentage),
			truncate(s.Description, maxDescriptionWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func printDuplicateTable(w io.Writer, dups []controllers.DuplicateFilename) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Filename", "Rows"})
	var data [][]string
	for _, d := range dups {
		data = append(data, []string{d.Filename, strconv.FormatInt(d.Count, 10)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func printHistoryTable(w io.Writer, runs []models.ImportRun) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Kind", "Finished", "Inserted", "Failed", "Source"})
	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			r.ID.String()[:8],
			r.Kind,
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.Inserted),
			strconv.Itoa(r.Failed),
			r.SourcePath,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
