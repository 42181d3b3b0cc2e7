// Command ticksched demonstrates the EDF scheduling core: a live
// tick-driven run of a small task set, and a 100-task admission-control
// comparison between the Liu & Layland bound and Processor Demand
// Analysis.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "ticksched",
		Short: "EDF scheduling core demo and admission-control harness",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newAdmitCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
