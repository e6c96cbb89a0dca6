package main

import (
	"fmt"
	"io"
	"os"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/spf13/cobra"
)

var publishCategory string
var publishDryRun bool

func init() {
	publishCmd.Flags().StringVarP(&publishCategory, "category", "c", "", "Category of the report (detected from the content by default)")
	publishCmd.Flags().BoolVarP(&publishDryRun, "dry-run", "n", false, "Show where the report would be published")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish [file|-]",
	Short: "Publish a report",
	Long:  `Save a Markdown report as today's post and update the manifest.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 1 {
			fmt.Println("Too many arguments. You can only have one which must be a file path or - for stdin.")
			os.Exit(1)
		}

		var content []byte
		var err error
		if len(args) == 0 || args[0] == "-" {
			content, err = io.ReadAll(os.Stdin)
		} else {
			content, err = os.ReadFile(args[0])
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		config := core.CurrentConfig()
		config.DryRun = publishDryRun
		publication, err := core.NewPublisher(config).Publish(string(content), publishCategory)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if publishDryRun {
			fmt.Printf("Would publish %s\n", publication)
			return
		}
		fmt.Printf("Published %s\n", publication)
	},
}
