package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/spf13/cobra"
)

var queryFormat string
var queryTemplate string

func init() {
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", "json", "Output format (json, yaml, text)")
	queryCmd.Flags().StringVarP(&queryTemplate, "template", "", "", "Go template applied to every post matching the arguments")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <jq-expression>",
	Short: "Query the manifest",
	Long: `Evaluate a jq expression against the manifest.

With --template, the arguments are a search query instead and the template is applied to every matching post.
Ex: daily query --template '{{ .Date }} {{ .Title | slug }}' openai`,
	Run: func(cmd *cobra.Command, args []string) {
		manifest := loadManifest()

		if queryTemplate != "" {
			hits := manifest.Search(strings.Join(args, " "))
			result, err := core.EvaluateTemplate(queryTemplate, hits)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Print(result)
			return
		}

		if len(args) != 1 {
			fmt.Println("Missing or too many arguments. A single jq expression is expected.")
			os.Exit(1)
		}
		values, err := manifest.Query(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		result, err := core.FormatValues(values, queryFormat)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Print(result)
	},
}
