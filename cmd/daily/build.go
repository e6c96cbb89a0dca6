package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/spf13/cobra"
)

var buildDryRun bool
var buildWatch bool

func init() {
	buildCmd.Flags().BoolVarP(&buildDryRun, "dry-run", "n", false, "Show the changes without writing the manifest")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild the manifest each time a post changes")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the manifest",
	Long:  `Scan the posts and generate manifest.json.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			fmt.Println("Too many arguments. No argument is supported.")
			os.Exit(1)
		}

		config := core.CurrentConfig()
		config.DryRun = buildDryRun

		ctx, cancel := commandContext()
		defer cancel()

		builder := core.NewBuilder(config, core.WithProgress(os.Stderr))
		manifest, err := builder.Build(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if buildDryRun {
			diff, err := builder.Diff(manifest)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if diff == "" {
				fmt.Println("Manifest is up to date.")
				return
			}
			printDiff(diff)
			return
		}

		if err := builder.Write(manifest); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d posts)\n", config.ManifestPath(), manifest.Count())

		if !buildWatch {
			return
		}
		err = builder.Watch(ctx, func(manifest *core.Manifest, err error) {
			if err != nil {
				core.CurrentLogger().Warnf("Build failed: %v", err)
				return
			}
			fmt.Printf("Rebuilt %s (%d posts)\n", config.ManifestPath(), manifest.Count())
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func printDiff(diff string) {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			color.Red(line)
		} else if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			color.Green(line)
		} else {
			fmt.Println(line)
		}
	}
}
