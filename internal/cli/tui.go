package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libscope/pkg/introspect"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorError)
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <library>",
		Short: "Interactively browse a library and read member source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			lib, err := a.inspector.Describe(ctx, args[0])
			if err != nil {
				return err
			}
			m := NewBrowseModel(ctx, lib, a.inspector.Source)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// =============================================================================
// BrowseModel - Interactive library browser
// =============================================================================

// SourceFunc fetches the source text of one element.
type SourceFunc func(ctx context.Context, req introspect.SourceRequest) (string, error)

type browseItem struct {
	label  string
	detail string
	req    introspect.SourceRequest
}

type sourceMsg struct {
	src string
	err error
}

// BrowseModel is the bubbletea model for the library browser. The list view
// shows classes, their methods and functions; enter opens the source view.
type BrowseModel struct {
	Library string
	Items   []browseItem
	Cursor  int
	Offset  int
	Height  int

	Source  string
	Err     error
	Scroll  int
	Loading bool

	ctx   context.Context
	fetch SourceFunc
}

// NewBrowseModel creates a browser over lib that loads source with fetch.
func NewBrowseModel(ctx context.Context, lib *introspect.Library, fetch SourceFunc) BrowseModel {
	return BrowseModel{
		Library: lib.Metadata.Name,
		Items:   browseItems(lib),
		Height:  15,
		ctx:     ctx,
		fetch:   fetch,
	}
}

func browseItems(lib *introspect.Library) []browseItem {
	name := lib.Metadata.Name
	var items []browseItem
	for _, c := range lib.Classes {
		items = append(items, browseItem{
			label:  "class " + c.Name,
			detail: firstLine(c.Docstring),
			req:    introspect.SourceRequest{Library: name, Kind: introspect.KindClass, Name: c.Name},
		})
		for _, m := range c.Methods {
			items = append(items, browseItem{
				label:  "  ." + m.Name + "()",
				detail: firstLine(m.Docstring),
				req:    introspect.SourceRequest{Library: name, Kind: introspect.KindMethod, Name: m.Name, Parent: c.Name},
			})
		}
	}
	for _, f := range lib.Functions {
		items = append(items, browseItem{
			label:  f.Name + "()",
			detail: firstLine(f.Docstring),
			req:    introspect.SourceRequest{Library: name, Kind: introspect.KindFunction, Name: f.Name},
		})
	}
	return items
}

func (m BrowseModel) viewingSource() bool {
	return m.Loading || m.Source != "" || m.Err != nil
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sourceMsg:
		m.Loading = false
		m.Source, m.Err = msg.src, msg.err
		m.Scroll = 0
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	case tea.KeyMsg:
		if m.viewingSource() {
			return m.updateSource(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m BrowseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "enter":
		if len(m.Items) == 0 {
			return m, nil
		}
		m.Loading = true
		req, ctx, fetch := m.Items[m.Cursor].req, m.ctx, m.fetch
		return m, func() tea.Msg {
			src, err := fetch(ctx, req)
			return sourceMsg{src: src, err: err}
		}
	}
	return m, nil
}

func (m BrowseModel) updateSource(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace", "left", "h":
		m.Source, m.Err, m.Scroll, m.Loading = "", nil, 0, false
	case "up", "k":
		if m.Scroll > 0 {
			m.Scroll--
		}
	case "down", "j":
		if m.Scroll < strings.Count(m.Source, "\n") {
			m.Scroll++
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	if m.viewingSource() {
		return m.sourceView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Library))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ source  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(style.Render(cursor + it.label))
		if it.detail != "" {
			b.WriteString("  " + listDimStyle.Render(truncate(it.detail, 60)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Items)), len(m.Items))))
	return b.String()
}

func (m BrowseModel) sourceView() string {
	var b strings.Builder
	it := m.Items[m.Cursor]
	b.WriteString(StyleTitle.Render(strings.TrimSpace(it.label)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  esc back  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.Loading:
		b.WriteString(listDimStyle.Render("Loading..."))
	case m.Err != nil:
		b.WriteString(listErrorStyle.Render(iconError + " " + m.Err.Error()))
	default:
		lines := strings.Split(m.Source, "\n")
		start := min(m.Scroll, len(lines))
		end := min(start+m.Height, len(lines))
		b.WriteString(strings.Join(lines[start:end], "\n"))
	}
	return b.String()
}
