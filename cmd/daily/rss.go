package main

import (
	"fmt"
	"os"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/internal/feed"
	"github.com/moxxiRan/daily-site/internal/helpers"
	"github.com/spf13/cobra"
)

var rssCategory string
var rssMonth string
var rssURL string
var rssOutput string

func init() {
	rssCmd.Flags().StringVarP(&rssCategory, "cat", "c", "", "Category (default category by default)")
	rssCmd.Flags().StringVarP(&rssMonth, "month", "m", "", "Month YYYY-MM (most recent month by default)")
	rssCmd.Flags().StringVarP(&rssURL, "url", "u", "", "URL of the reader page (site base URL by default)")
	rssCmd.Flags().StringVarP(&rssOutput, "output", "o", "", "File to write (<cat>-<month>-rss.xml by default, - for stdout)")
	rootCmd.AddCommand(rssCmd)
}

var rssCmd = &cobra.Command{
	Use:   "rss",
	Short: "Export a RSS feed",
	Long:  `Export the posts of a category for a single month as a RSS 2.0 feed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			fmt.Println("Too many arguments. No argument is supported.")
			os.Exit(1)
		}

		config := core.CurrentConfig()
		manifest := loadManifest()

		category := rssCategory
		if category == "" {
			category = config.ConfigFile.Publish.DefaultCategory
		}
		month := rssMonth
		if month == "" {
			months := manifest.MonthKeys(category)
			if len(months) == 0 {
				fmt.Printf("No post found for category %q\n", category)
				os.Exit(1)
			}
			month = months[0]
		}
		pageURL := rssURL
		if pageURL == "" {
			pageURL = manifest.Site.BaseURL
		}

		channel, items := feed.FromManifest(manifest, category, month, pageURL, config.Location())
		rss, err := feed.NewGenerator().Run(channel, items)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		output := rssOutput
		if output == "-" {
			fmt.Print(rss)
			return
		}
		if output == "" {
			output = feed.Filename(category, month)
		}
		if err := helpers.WriteFileAtomic(output, []byte(rss), 0644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d items to %s\n", len(items), output)
	},
}
