package main

import (
	"fmt"
	"os"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/pkg/filesystem"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <directory>",
	Short: "Export the site",
	Long:  `Rebuild the manifest and copy the publishable files into a deploy directory.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()

		ctx, cancel := commandContext()
		defer cancel()
		builder := core.NewBuilder(config)
		manifest, err := builder.Build(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := builder.Write(manifest); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := config.Export(args[0]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		size, err := filesystem.DirSize(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d posts (%s) to %s\n", manifest.Count(), filesystem.HumanSize(size), args[0])
	},
}
