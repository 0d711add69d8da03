package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/bulkmv/cmd/bulkmv"
	"github.com/arthur-debert/bulkmv/pkg/ui"
)

func main() {
	rootCmd := bulkmv.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		painter := ui.NewPainter(ui.FormatAuto, os.Stderr)
		fmt.Fprintln(os.Stderr, painter.Error(err))
		os.Exit(1)
	}
}
