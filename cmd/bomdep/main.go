package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "bomdep",
		Short: "Dependency tracking and OmniBOR build provenance recording",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newRecordCmd())
	root.AddCommand(newDepsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("bomdep 0.1.0-dev")
		},
	}
}
