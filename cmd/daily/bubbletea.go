package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/internal/markdown"
	"github.com/moxxiRan/daily-site/internal/reader"
	pkgmarkdown "github.com/moxxiRan/daily-site/pkg/markdown"
)

/*
 * The command browse uses Bubble Tea under the hood to provide an interactive reader.
 * All BubbleTea-related code is present in this file to make easy to refactor or switch to another library someday.
 */

var (
	// List-specific attributes
	listWidth             = 80
	listHeight            = 20
	listTitleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	listItemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	listSelectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	listExcerptStyle      = lipgloss.NewStyle().PaddingLeft(6).Foreground(lipgloss.Color("245"))

	// Pager-specific attributes
	pagerTitleStyle = func() lipgloss.Style {
		b := lipgloss.RoundedBorder()
		b.Right = "├"
		return lipgloss.NewStyle().BorderStyle(b).Padding(0, 1)
	}()

	pagerInfoStyle = func() lipgloss.Style {
		b := lipgloss.RoundedBorder()
		b.Left = "┤"
		return pagerTitleStyle.Copy().BorderStyle(b)
	}()

	// Detail-specific attributes
	detailTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	detailMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	detailSectionStyle = lipgloss.NewStyle().Bold(true)
	detailInsightStyle = lipgloss.NewStyle().Italic(true)

	// Common attributes
	helpStyle = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("241"))
)

/*
 * Browser
 */

func Browse(ctx context.Context, session *reader.Session, fetcher reader.Fetcher, parallel int) {
	/* Inspired by https://github.com/charmbracelet/bubbletea/blob/master/examples/list-fancy/ */
	p := tea.NewProgram(
		newBrowseModel(ctx, session, fetcher, parallel),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}

// cardItem is an entry of the current month.
type cardItem struct {
	entry   core.Entry
	excerpt string
}

func (i cardItem) Title() string       { return reader.FormatDate(i.entry.Date) + " " + i.entry.Title }
func (i cardItem) Description() string { return i.excerpt }
func (i cardItem) FilterValue() string { return i.entry.Title }

type cardDelegate struct{}

func (d cardDelegate) Height() int                             { return 2 }
func (d cardDelegate) Spacing() int                            { return 1 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(cardItem)
	if !ok {
		return
	}

	fn := listItemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return listSelectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	excerpt := i.Description()
	if width := m.Width() - 8; width > 0 {
		excerpt = runewidth.Truncate(excerpt, width, "…")
	}
	fmt.Fprint(w, fn(i.Title())+"\n"+listExcerptStyle.Render(excerpt))
}

// previewsMsg carries the excerpts computed for a given selection.
type previewsMsg struct {
	generation uint64
	previews   []reader.Preview
}

// detailMsg carries an opened post.
type detailMsg struct {
	key    string
	detail *reader.Detail
}

type browseModel struct {
	ctx        context.Context
	session    *reader.Session
	fetcher    reader.Fetcher
	parallel   int
	categories []string

	list      list.Model
	search    textinput.Model
	searching bool

	viewport viewport.Model
	detail   *reader.Detail
	pending  string // key of the post being opened
	ready    bool
	width    int
	height   int
}

func newBrowseModel(ctx context.Context, session *reader.Session, fetcher reader.Fetcher, parallel int) browseModel {
	l := list.New(nil, cardDelegate{}, listWidth, listHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "title, summary, tag..."
	ti.Prompt = "/ "
	ti.CharLimit = 156
	ti.Width = 60

	m := browseModel{
		ctx:        ctx,
		session:    session,
		fetcher:    fetcher,
		parallel:   parallel,
		categories: session.Manifest().CategoryKeys(),
		list:       l,
		search:     ti,
	}
	m.list.SetItems(m.cards())
	return m
}

func (m browseModel) Init() tea.Cmd {
	_, _, _, generation := m.session.Current()
	return m.loadPreviews(generation)
}

// cards returns the entries of the current selection using their declared summary.
func (m browseModel) cards() []list.Item {
	var items []list.Item
	for _, entry := range m.session.Entries() {
		items = append(items, cardItem{entry: entry, excerpt: entry.Summary})
	}
	return items
}

func (m browseModel) loadPreviews(generation uint64) tea.Cmd {
	ctx, fetcher, parallel := m.ctx, m.fetcher, m.parallel
	entries := m.session.Entries()
	return func() tea.Msg {
		return previewsMsg{
			generation: generation,
			previews:   reader.Prefetch(ctx, fetcher, entries, parallel),
		}
	}
}

func (m browseModel) openDetail(entry core.Entry) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	category, _, _, _ := m.session.Current()
	key := category + "/" + entry.Date
	return func() tea.Msg {
		return detailMsg{
			key:    key,
			detail: reader.OpenDetail(ctx, fetcher, category, entry),
		}
	}
}

// refresh reloads the cards after a change of selection.
func (m *browseModel) refresh(generation uint64) tea.Cmd {
	m.list.ResetSelected()
	return tea.Batch(m.list.SetItems(m.cards()), m.loadPreviews(generation))
}

// moveMonth selects an older (delta > 0) or a more recent (delta < 0) month.
func (m *browseModel) moveMonth(delta int) tea.Cmd {
	category, month, _, _ := m.session.Current()
	months := m.session.MonthKeys()
	index := -1
	for i, key := range months {
		if key == month {
			index = i
		}
	}
	next := index + delta
	if index < 0 || next < 0 || next >= len(months) {
		return nil
	}
	return m.refresh(m.session.Select(category, months[next]))
}

func (m *browseModel) nextCategory() tea.Cmd {
	if len(m.categories) == 0 {
		return nil
	}
	category, _, _, _ := m.session.Current()
	next := m.categories[0]
	for i, key := range m.categories {
		if key == category {
			next = m.categories[(i+1)%len(m.categories)]
		}
	}
	return m.refresh(m.session.Select(next, ""))
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, max(1, msg.Height-lipgloss.Height(m.headerView())-2))
		verticalMarginHeight := lipgloss.Height(m.pagerHeaderView()) + lipgloss.Height(m.pagerFooterView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-verticalMarginHeight))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-verticalMarginHeight)
		}
		if m.detail != nil {
			m.viewport.SetContent(detailContent(m.detail, m.viewport.Width))
		}
		return m, nil

	case previewsMsg:
		// The selection changed while the excerpts were computed
		if !m.session.Accept(msg.generation) {
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.previews))
		for _, preview := range msg.previews {
			excerpt := preview.Excerpt
			if preview.Err != nil {
				core.CurrentLogger().Debugf("Failed to preview %s: %v", preview.Entry.URL, preview.Err)
			}
			items = append(items, cardItem{entry: preview.Entry, excerpt: excerpt})
		}
		return m, m.list.SetItems(items)

	case detailMsg:
		if msg.key != m.pending {
			return m, nil
		}
		m.pending = ""
		m.detail = msg.detail
		m.viewport.SetContent(detailContent(msg.detail, m.viewport.Width))
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.detail != nil {
			switch msg.String() {
			case "q", "esc", "backspace":
				m.detail = nil
				return m, nil
			}
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.searching {
			switch msg.Type {
			case tea.KeyEnter:
				m.searching = false
				m.search.Blur()
				return m, m.refresh(m.session.Search(m.search.Value()))
			case tea.KeyEsc:
				m.searching = false
				m.search.Blur()
				return m, nil
			}
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			if _, _, query, _ := m.session.Current(); query != "" {
				m.search.SetValue("")
				return m, m.refresh(m.session.Search(""))
			}
			return m, tea.Quit
		case "/":
			m.searching = true
			cmd = m.search.Focus()
			return m, cmd
		case "[":
			return m, m.moveMonth(1)
		case "]":
			return m, m.moveMonth(-1)
		case "tab":
			return m, m.nextCategory()
		case "enter":
			i, ok := m.list.SelectedItem().(cardItem)
			if !ok {
				return m, nil
			}
			cmd := m.openDetail(i.entry)
			category, _, _, _ := m.session.Current()
			m.pending = category + "/" + i.entry.Date
			return m, cmd
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if m.detail != nil && m.ready {
		return fmt.Sprintf("%s\n%s\n%s", m.pagerHeaderView(), m.viewport.View(), m.pagerFooterView())
	}

	var sb strings.Builder
	sb.WriteString(m.headerView() + "\n")
	if len(m.list.Items()) == 0 {
		sb.WriteString(listItemStyle.Render("No post.") + "\n")
	} else {
		sb.WriteString(m.list.View() + "\n")
	}
	if m.searching {
		sb.WriteString(m.search.View() + "\n")
	} else if m.pending != "" {
		sb.WriteString(helpStyle.Render("Loading...") + "\n")
	} else {
		sb.WriteString(helpStyle.Render("[/] month • tab category • / search • enter open • q quit") + "\n")
	}
	return sb.String()
}

func (m browseModel) headerView() string {
	category, month, query, _ := m.session.Current()
	manifest := m.session.Manifest()
	title := fmt.Sprintf("%s · %s · %s", manifest.Site.Title, manifest.Label(category), month)
	if months := m.session.MonthKeys(); len(months) > 1 {
		title += fmt.Sprintf(" (%d months)", len(months))
	}
	if query != "" {
		title += fmt.Sprintf(" · %q", query)
	}
	return listTitleStyle.Render(title)
}

func (m browseModel) pagerHeaderView() string {
	var label string
	if m.detail != nil {
		label = reader.FormatDate(m.detail.Entry.Date)
	}
	title := pagerTitleStyle.Render(label)
	line := strings.Repeat("─", max(0, m.viewport.Width-lipgloss.Width(title)))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, line)
}

func (m browseModel) pagerFooterView() string {
	info := pagerInfoStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	line := strings.Repeat("─", max(0, m.viewport.Width-lipgloss.Width(info)))
	return lipgloss.JoinHorizontal(lipgloss.Center, line, info)
}

// detailContent renders a post for the terminal.
// Cards are preferred when the post is split into sections.
func detailContent(detail *reader.Detail, width int) string {
	var sb strings.Builder

	sb.WriteString(detailTitleStyle.Render(detail.Entry.Title) + "\n")
	sb.WriteString(detailMetaStyle.Render(fmt.Sprintf("%s · 约 %d 分钟", reader.FormatDate(detail.Entry.Date), detail.ReadingTime())) + "\n")
	if detail.Meta.Category != "" {
		sb.WriteString(detailMetaStyle.Render("分类："+detail.Meta.Category) + "\n")
	}
	if sources := formatSources(detail.Meta.Sources); sources != "" {
		sb.WriteString(detailMetaStyle.Render("来源："+sources) + "\n")
	}
	if len(detail.Entry.Tags) > 0 {
		sb.WriteString(detailMetaStyle.Render("#"+strings.Join(detail.Entry.Tags, " #")) + "\n")
	}

	if len(detail.TOC) > 0 {
		sb.WriteString("\n" + detailSectionStyle.Render("目录") + "\n")
		for _, heading := range detail.TOC {
			sb.WriteString("  • " + heading.Text + "\n")
		}
	}

	if len(detail.Sections.Sections) == 0 {
		sb.WriteString("\n" + pkgmarkdown.ToText(detail.Body.String()) + "\n")
	}
	for _, section := range detail.Sections.Sections {
		sb.WriteString("\n" + detailSectionStyle.Render("■ "+section.Title) + "\n")
		if section.Insight != "" {
			sb.WriteString(detailInsightStyle.Render("核心洞察："+section.Insight) + "\n")
		}
		for _, bullet := range section.Bullets {
			sb.WriteString("  • " + bullet + "\n")
		}
		if sources := formatSources(section.Meta.Sources); sources != "" {
			sb.WriteString(detailMetaStyle.Render("来源："+sources) + "\n")
		}
	}

	if len(detail.Sections.Related) > 0 {
		sb.WriteString("\n" + detailSectionStyle.Render("相关链接") + "\n")
		for _, link := range detail.Sections.Related {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", link.Text, link.URL))
		}
	}

	if width <= 0 {
		return sb.String()
	}
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func formatSources(sources []markdown.Source) string {
	var labels []string
	for _, source := range sources {
		labels = append(labels, fmt.Sprintf("%s (%s)", source.Label, source.Href))
	}
	return strings.Join(labels, "、")
}
