package utils

import (
	"fmt"
	"io"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawSizeChart draws one bar per subscription with its orphaned size in GB.
// Largest subscriptions get the warmest colours.
func DrawSizeChart(w io.Writer, summary model.OrphanSummary) {
	if len(summary.Subscriptions) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\n", paint(w, text.FgHiWhite, " 🏥  ORPHANED SNAPSHOT SIZE BY SUBSCRIPTION"))
	fmt.Fprintln(w, paint(w, text.FgHiBlue, " ------------------------------------------------"))

	bc := barchart.New(chartWidth(len(summary.Subscriptions)), 20)

	colors := assignRankedColors(summary.Subscriptions)
	for idx, b := range summary.Subscriptions {
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%s: %d GB", b.Label, b.SizeGB),
			Values: []barchart.BarValue{
				{
					Name:  b.Label,
					Value: float64(b.SizeGB),
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(colors[idx])),
				},
			},
		})
	}

	bc.Draw()
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View())))
}

func chartWidth(bars int) int {
	width := bars * 24
	if width < 40 {
		return 40
	}
	if width > 130 {
		return 130
	}
	return width
}

// assignRankedColors colours bars by size rank; bars beyond the palette get
// the default colour.
func assignRankedColors(breakdown []model.SubscriptionBreakdown) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	order := make([]int, len(breakdown))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return breakdown[order[i]].SizeGB > breakdown[order[j]].SizeGB
	})

	colors := make([]string, len(breakdown))
	for rank, original := range order {
		if rank < len(palette) {
			colors[original] = palette[rank]
		}
	}
	return colors
}
