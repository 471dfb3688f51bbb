package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fleveque/therapist-finder/internal/model"
	"github.com/fleveque/therapist-finder/internal/shell"
)

// searchResultMsg carries the finder's answer back into the Update loop.
type searchResultMsg struct {
	results []model.Therapist
	err     error
}

// Model is the bubbletea model. The session is only touched from Update, so
// the search command running in its own goroutine never races with it.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc // aborts an in-flight search on quit
	finder  shell.Finder
	session *shell.Session

	input   textinput.Model
	spinner spinner.Model
	styles  Styles

	width    int
	quitting bool
}

// New creates the terminal UI model.
func New(ctx context.Context, finder shell.Finder) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter 5-digit zipcode"
	// No CharLimit: the raw edit goes to the session, which filters digits and
	// rejects an over-long value whole. Update writes the result back.
	ti.Width = 24
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Teal)

	ctx, cancel := context.WithCancel(ctx)

	return Model{
		ctx:     ctx,
		cancel:  cancel,
		finder:  finder,
		session: shell.NewSession(),
		input:   ti,
		spinner: sp,
		styles:  DefaultStyles(),
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State exposes the session snapshot.
func (m Model) State() shell.State {
	return m.session.State()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		case tea.KeyEnter:
			zipcode, ok := m.session.Submit()
			if !ok {
				return m, nil
			}
			m.input.Blur()
			return m, tea.Batch(m.spinner.Tick, m.search(zipcode))
		}

		// Input is disabled while a search is in flight
		if m.session.Loading() {
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		// The session's digit filter decides what the field shows
		m.session.SetZipcode(m.input.Value())
		m.input.SetValue(m.session.Zipcode())
		return m, cmd

	case searchResultMsg:
		m.session.Complete(msg.results, msg.err)
		return m, m.input.Focus()

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// search runs the finder off the UI loop and reports back with a message.
func (m Model) search(zipcode string) tea.Cmd {
	ctx, finder := m.ctx, m.finder
	return func() tea.Msg {
		results, err := finder.FindTherapists(ctx, zipcode)
		return searchResultMsg{results: results, err: err}
	}
}

// View renders the whole program.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	screen := shell.Render(m.session.State())
	s := m.styles

	var b strings.Builder

	b.WriteString(s.Title.Render(shell.AppTitle))
	b.WriteString("\n")
	b.WriteString(s.Tagline.Render(shell.AppTagline))
	b.WriteString("\n\n")

	button := s.ButtonOff.Render(screen.ButtonLabel)
	if screen.CanSubmit {
		button = s.Button.Render(screen.ButtonLabel)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, s.Input.Render(m.input.View()), button))
	b.WriteString("\n\n")

	b.WriteString(m.body(screen))

	b.WriteString(s.Help.Render("enter: search • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) body(screen shell.Screen) string {
	s := m.styles

	switch screen.Kind {
	case shell.ScreenLoading:
		return s.Message.Render(m.spinner.View()+" "+screen.Message) + "\n"
	case shell.ScreenError:
		return s.Error.Render(screen.Message) + "\n"
	case shell.ScreenResults:
		var b strings.Builder
		b.WriteString(s.Header.Render(screen.Header))
		b.WriteString("\n")
		for _, card := range screen.Cards {
			b.WriteString(m.card(card))
			b.WriteString("\n")
		}
		return b.String()
	default:
		return s.Message.Render(screen.Message) + "\n"
	}
}

func (m Model) card(c shell.Card) string {
	s := m.styles
	lines := []string{
		s.Name.Render(c.Name),
		s.Specialty.Render(c.Specialty),
		"",
		s.Detail.Render("⌂ " + c.Address),
		s.Detail.Render("☎ ") + s.Link.Render(c.Phone) + " " + s.Tagline.Render("("+c.PhoneHref+")"),
	}

	style := s.Card
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, finder shell.Finder, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithContext(ctx))
	_, err := tea.NewProgram(New(ctx, finder), opts...).Run()
	return err
}
