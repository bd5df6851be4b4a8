package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/capalinks/internal/browser"
	"github.com/matheuskafuri/capalinks/internal/links"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeHelp
)

// App is the bubbletea model behind `capalinks browse`.
type App struct {
	path        string
	all         []links.Link
	visible     []links.Link
	generatedAt string
	cursor      int
	focus       focusPane
	mode        mode

	width  int
	height int

	searchInput textinput.Model
	spinner     spinner.Model
	filterBar   filterBar

	loading       bool
	previewScroll int
	err           error

	// openURL is swapped out in tests.
	openURL func(string) error
}

func NewApp(path string) *App {
	ti := textinput.New()
	ti.Placeholder = "Search links..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		path:        path,
		searchInput: ti,
		spinner:     sp,
		filterBar:   newFilterBar(nil),
		loading:     true,
		openURL:     browser.Open,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadLinksCmd(), a.spinner.Tick)
}

func (a *App) loadLinksCmd() tea.Cmd {
	path := a.path
	return func() tea.Msg {
		env, err := links.Load(path)
		if err != nil {
			return loadErrMsg{err: err}
		}
		return linksLoadedMsg{env: env}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return loadErrMsg{err: err}
		}
		return nil
	}
}

// applyFilters recomputes the visible links and keeps the cursor in range.
func (a *App) applyFilters() {
	a.visible = filterLinks(a.all, a.filterBar.activeHosts(), a.searchInput.Value())
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
	a.previewScroll = 0
}

func (a *App) selected() *links.Link {
	if len(a.visible) == 0 || a.cursor >= len(a.visible) {
		return nil
	}
	return &a.visible[a.cursor]
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case linksLoadedMsg:
		a.loading = false
		a.all = msg.env.Links
		a.generatedAt = msg.env.GeneratedAt
		a.filterBar = newFilterBar(topHosts(a.all, maxHostTabs))
		a.applyFilters()
		return a, nil

	case loadErrMsg:
		a.loading = false
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.visible)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "g", "home":
		a.cursor = 0
		a.previewScroll = 0
		return a, nil
	case "G", "end":
		a.cursor = max(0, len(a.visible)-1)
		a.previewScroll = 0
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if l := a.selected(); l != nil {
			return a, a.openCmd(l.URL)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.filterBar.filterMode = true
		return a, nil
	case "r":
		if !a.loading {
			a.loading = true
			return a, tea.Batch(a.loadLinksCmd(), a.spinner.Tick)
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.applyFilters()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	prev := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Only re-filter on actual value changes, not cursor moves etc.
	if a.searchInput.Value() != prev {
		a.applyFilters()
	}
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		a.filterBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.filterBar.filterCursor > 0 {
			a.filterBar.filterCursor--
		}
		return a, nil
	case "right", "l":
		if a.filterBar.filterCursor < len(a.filterBar.hosts)-1 {
			a.filterBar.filterCursor++
		}
		return a, nil
	case " ", "enter":
		a.filterBar.toggleCurrent()
		a.cursor = 0
		a.applyFilters()
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.filterBar.hosts) {
			a.filterBar.toggle(a.filterBar.hosts[idx])
			a.cursor = 0
			a.applyFilters()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  capalinks")
	}
	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1

	headerLeft := headerStyle.Render("capalinks")
	headerRight := headerDateStyle.Render(a.generatedLabel())
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	filter := a.filterBar.render(a.width)
	if a.mode == modeSearch {
		filter = a.searchInput.View()
	}

	innerListW := listWidth - 4 // border + padding
	var listContent string
	if a.loading {
		listContent = lipglossCenter(a.spinner.View()+" Loading "+a.path, innerListW, contentHeight)
	} else {
		listContent = renderList(a.visible, a.cursor, contentHeight, innerListW)
	}

	listStyle, previewStyle := listPaneStyle, previewPaneStyle
	if a.focus == focusList {
		listStyle = listPaneActiveStyle
	} else {
		previewStyle = previewPaneActiveStyle
	}
	listPane := listStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	previewContent := renderPreview(a.selected(), previewWidth-4, contentHeight, a.previewScroll)
	previewPane := previewStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(len(a.visible), len(a.all), a.filterBar.activeLabel(), a.width, a.mode == modeSearch)
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

func (a *App) generatedLabel() string {
	t, ok := parseTimestamp(a.generatedAt)
	if !ok {
		return ""
	}
	return "generated " + relativeTime(t)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("capalinks")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate link list\n" +
		"  g/G           Jump to first/last link\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open link in browser\n" +
		"  r             Reload links file\n" +
		"  /             Search links\n" +
		"  f             Toggle host filter mode\n\n" +
		dim.Render("Filter Mode") + "\n" +
		"  ←/→, h/l     Move between hosts\n" +
		"  space/enter   Toggle host\n" +
		"  1-9           Toggle host by number\n" +
		"  esc, f        Exit filter mode\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the browser UI on the links file at path.
func Run(path string) error {
	p := tea.NewProgram(NewApp(path), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
