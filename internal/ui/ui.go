package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/facelapse/internal/events"
	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/page"
	"github.com/desertthunder/facelapse/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SelectView ViewState = iota
	UploadingView
	ResultView
)

// Downloader saves a generated video into a directory.
type Downloader interface {
	Download(ctx context.Context, ref, dir string) (string, error)
}

// Options holds the TUI's dependencies.
type Options struct {
	Context    context.Context
	Host       *page.Host
	Downloader Downloader
	Open       func(ctx context.Context, url string) error // Defaults to [shared.OpenBrowser]
	OutputDir  string
	Folder     string // Initial value of the folder input
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	host       *page.Host
	downloader Downloader
	open       func(context.Context, string) error
	outputDir  string
	events     chan events.Event
	input      textinput.Model
	spinner    spinner.Model
	notice     string
	saved      string
	width      int
	height     int
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	input := textinput.New()
	input.Placeholder = "path/to/photos"
	input.Prompt = "Folder: "
	input.SetValue(opts.Folder)
	input.Focus()

	m := &Model{
		ctx:        opts.Context,
		view:       SelectView,
		host:       opts.Host,
		downloader: opts.Downloader,
		open:       opts.Open,
		outputDir:  opts.OutputDir,
		events:     make(chan events.Event, 16),
		input:      input,
		spinner:    styles.NewSpinner(),
		help:       help.New(),
		keys:       newKeyMap(),
	}
	m.host.Forward(m.events, events.ErrorNotificationEvent, events.VideoReadyEvent)
	return m
}

// Init starts the cursor blink and listens for forwarded bus events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-4, 10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SelectView:
			return m.handleSelectKeys(msg)
		case UploadingView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case spinner.TickMsg:
		if m.view != UploadingView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgBusEvent:
		ev := msg.data.(events.Event)
		if n, ok := ev.Payload.(events.ErrorNotification); ok {
			m.notice = n.Message
		}
		return m, m.waitForEvent()

	case MsgUploadDone:
		if m.host.Current().State() == models.ResultReady {
			m.view = ResultView
			m.input.Blur()
		} else {
			m.view = SelectView
			m.input.Focus()
		}
		return m, nil

	case MsgDownloadDone:
		res := msg.data.(struct {
			path string
			err  error
		})
		if res.err != nil {
			m.notice = res.err.Error()
			return m, nil
		}
		m.saved = res.path
		m.notice = ""
		return m, nil

	case MsgOpened:
		if err, _ := msg.data.(error); err != nil {
			m.notice = err.Error()
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SelectView:
		return m.renderSelect()
	case UploadingView:
		return m.renderUploading()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.exit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.sort):
		s := m.host.Current()
		if s.SortOrder() == shared.SortYoungToOld {
			s.SetSortOrder(shared.SortOldToYoung)
		} else {
			s.SetSortOrder(shared.SortYoungToOld)
		}
		return m, nil
	case key.Matches(msg, m.keys.upload):
		m.view = UploadingView
		m.notice = ""
		m.input.Blur()
		return m, tea.Batch(m.spinner.Tick, m.startUpload(strings.TrimSpace(m.input.Value())))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.open):
		return m, m.openVideo(m.host.Current().VideoURL())
	case key.Matches(msg, m.keys.download):
		return m, m.startDownload(m.host.Current().VideoPath())
	case key.Matches(msg, m.keys.restart):
		m.host.Current().Restart()
		m.view = SelectView
		m.notice = ""
		m.saved = ""
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) startUpload(dir string) tea.Cmd {
	host := m.host
	return func() tea.Msg {
		return uploadDoneMsg(host.Choose(dir))
	}
}

func (m *Model) startDownload(ref string) tea.Cmd {
	if m.downloader == nil {
		return nil
	}
	ctx, d, dir := m.ctx, m.downloader, m.outputDir
	return func() tea.Msg {
		path, err := d.Download(ctx, ref, dir)
		return downloadDoneMsg(path, err)
	}
}

func (m *Model) openVideo(url string) tea.Cmd {
	ctx, open := m.ctx, m.open
	return func() tea.Msg {
		return openedMsg(open(ctx, url))
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	ch := m.events
	return func() tea.Msg {
		return busEventMsg(<-ch)
	}
}

func (m *Model) header() string {
	s := m.host.Current()
	return fmt.Sprintf("%s\n%s", styles.title.Render("faceLAPSE"), s.Status())
}

func (m *Model) renderSelect() string {
	s := m.host.Current()
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(styles.hint.Render(fmt.Sprintf("Sort: %s • %s", s.SortOrder(), page.FileTypeNote)))

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.failure.Render(m.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.upload, m.keys.sort, m.keys.exit}))
	return b.String()
}

func (m *Model) renderUploading() string {
	return fmt.Sprintf("%s\n\n%s %s", m.header(), m.spinner.View(), m.input.Value())
}

func (m *Model) renderResult() string {
	s := m.host.Current()
	var b strings.Builder

	b.WriteString(styles.ready.Render("✓ " + s.Status()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Video: %s\n", s.VideoPath())
	fmt.Fprintf(&b, "URL:   %s", s.VideoURL())

	if m.saved != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ready.Render("Saved to " + m.saved))
	}
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.warn.Render(m.notice))
	}

	helpKeys := []key.Binding{m.keys.open, m.keys.download, m.keys.restart, m.keys.quit}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}
