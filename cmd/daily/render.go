package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/internal/helpers"
	"github.com/moxxiRan/daily-site/internal/reader"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var renderOutput string
var renderOpen bool

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "HTML file to write (default <category>-<date>.html)")
	renderCmd.Flags().BoolVarP(&renderOpen, "open", "", false, "Open the page in the browser")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <category> <date>",
	Short: "Render a post",
	Long:  `Render a post as a standalone HTML page, as displayed in the detail drawer.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		category, date := args[0], args[1]

		manifest := loadManifest()
		entry, ok := manifest.Find(category, date)
		if !ok {
			fmt.Printf("No post found for %s on %s\n", category, date)
			os.Exit(1)
		}

		ctx, cancel := commandContext()
		defer cancel()
		fetcher := reader.NewFSFetcher(core.CurrentConfig().ContentDir())
		detail := reader.OpenDetail(ctx, fetcher, category, entry)

		var buf bytes.Buffer
		if err := renderPage(&buf, manifest.Site, detail); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		output := renderOutput
		if output == "" {
			output = slug.Make(category+"-"+date) + ".html"
		}
		if err := helpers.WriteFileAtomic(output, buf.Bytes(), 0644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Rendered %s to %s\n", entry, output)

		if renderOpen {
			absolutePath, err := filepath.Abs(output)
			if err == nil {
				err = browser.OpenFile(absolutePath)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Unable to open %s: %v", output, err)
				os.Exit(1)
			}
		}
	},
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>{{ .Entry.Title }} · {{ .Site.Title }}</title>
</head>
<body>
<article>
<header>
<h1>{{ .Entry.Title }}</h1>
<p class="meta">{{ .Date }} · {{ .ReadingTime }} 分钟{{ range .Entry.Tags }} · <span class="tag">{{ . }}</span>{{ end }}</p>
{{- with .Meta.Category }}
<p class="category">分类：{{ . }}</p>
{{- end }}
{{- if .Meta.Sources }}
<p class="sources">来源：{{ range .Meta.Sources }}<a href="{{ .Href }}" target="_blank" rel="noopener noreferrer">{{ .Label }}</a> {{ end }}</p>
{{- end }}
</header>
{{- if .TOC }}
<nav class="toc">
<ul>
{{- range .TOC }}
<li><a href="#{{ .ID }}">{{ .Text }}</a></li>
{{- end }}
</ul>
</nav>
{{- end }}
<section class="body">
{{ .Body }}
</section>
</article>
</body>
</html>
`))

// renderPage writes the standalone HTML page of a post.
func renderPage(w io.Writer, site core.Site, detail *reader.Detail) error {
	return pageTemplate.Execute(w, struct {
		*reader.Detail
		Site        core.Site
		Date        string
		ReadingTime int
		Body        template.HTML
	}{
		Detail:      detail,
		Site:        site,
		Date:        reader.FormatDate(detail.Entry.Date),
		ReadingTime: detail.ReadingTime(),
		// Rendered from the Markdown of the post
		Body: template.HTML(detail.HTML()),
	})
}
