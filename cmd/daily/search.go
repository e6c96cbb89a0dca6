package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/internal/reader"
	"github.com/spf13/cobra"
)

var searchCategory string

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "cat", "c", "", "Restrict the search to a category")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search posts",
	Long:  `Search posts by title, summary, or tag (case-insensitive).`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hits := loadManifest().Search(strings.Join(args, " "))
		if searchCategory != "" {
			var filtered []core.Hit
			for _, hit := range hits {
				if hit.Category == searchCategory {
					filtered = append(filtered, hit)
				}
			}
			hits = filtered
		}
		if len(hits) == 0 {
			fmt.Println("No matching post.")
			os.Exit(1)
		}
		fmt.Print(formatHits(hits))
	},
}

// formatHits lists the hits grouped by category and month.
func formatHits(hits []core.Hit) string {
	var sb strings.Builder
	var group string
	for _, hit := range hits {
		if current := hit.Category + " " + hit.Month; current != group {
			group = current
			sb.WriteString(color.New(color.Bold).Sprint(group) + "\n")
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", color.CyanString(reader.FormatDate(hit.Entry.Date)), hit.Entry.Title))
		if hit.Entry.Summary != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", hit.Entry.Summary))
		}
	}
	return sb.String()
}
