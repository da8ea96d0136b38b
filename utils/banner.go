package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawBanner prints the tool banner and the provider being scanned.
func DrawBanner(w io.Writer, provider string) {
	banner := figure.NewFigure("snapshot doctor", "small", true)
	fmt.Fprintln(w, paint(w, text.FgHiCyan, banner.String()))
	fmt.Fprintf(w, " %s %s\n", paint(w, text.FgHiWhite, "Provider:"), paint(w, text.FgBlue, strings.ToUpper(provider)))
	fmt.Fprintln(w, paint(w, text.FgHiBlue, " ------------------------------------------------"))
}
