// Command-line interface for importing review data and printing reports.
package main

import (
	"fmt"
	"os"

	"reviewdash/reviewdash/utils/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError("error: "+err.Error()))
		os.Exit(1)
	}
}
