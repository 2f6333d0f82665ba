package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/drag-match/config"
)

func main() {
	cfg := config.Default()
	cobra.CheckErr(newCmd(&cfg).Execute())
}
