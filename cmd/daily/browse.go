package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/internal/reader"
	"github.com/spf13/cobra"
)

var browseCategory string
var browseURL string

func init() {
	browseCmd.Flags().StringVarP(&browseCategory, "cat", "c", "", "Category to open first (default category by default)")
	browseCmd.Flags().StringVarP(&browseURL, "url", "u", "", "Base URL of a published site (local content directory by default)")
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Read posts in the terminal",
	Long:  `Browse the posts month by month and open them in a pager.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			fmt.Println("Too many arguments. No argument is supported.")
			os.Exit(1)
		}

		config := core.CurrentConfig()

		var fetcher reader.Fetcher
		baseURL := config.ConfigFile.Site.BaseURL
		if strings.HasPrefix(browseURL, "http://") || strings.HasPrefix(browseURL, "https://") {
			fetcher = reader.NewHTTPFetcher(browseURL)
			baseURL = browseURL
		} else {
			root := config.ContentDir()
			if browseURL != "" {
				root = browseURL
			}
			fetcher = reader.NewFSFetcher(root)
		}

		ctx, cancel := commandContext()
		defer cancel()

		manifest := reader.LoadManifest(ctx, fetcher, baseURL)

		category := browseCategory
		if category == "" {
			category = config.ConfigFile.Publish.DefaultCategory
		}
		if _, ok := manifest.Categories[category]; !ok {
			keys := manifest.CategoryKeys()
			if len(keys) == 0 {
				fmt.Println("No category to browse")
				os.Exit(1)
			}
			category = keys[0]
		}

		session := reader.NewSession(manifest, category)
		Browse(ctx, session, fetcher, config.ConfigFile.Content.Parallel)
	},
}
