package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette names the [lipgloss.Style] used by each view
type Palette struct {
	title   lipgloss.Style // header on every view
	hint    lipgloss.Style // sort order and file type note on SelectView
	failure lipgloss.Style // error notification on SelectView
	spinner lipgloss.Style // spinner on UploadingView
	ready   lipgloss.Style // status and saved path on ResultView
	warn    lipgloss.Style // open or download problems on ResultView
}

// NewPalette builds a [Palette] from the accent, success, error, warning and muted colors.
func NewPalette(accent, success, failure, warning, muted string) *Palette {
	return &Palette{
		title:   NewBold(accent).MarginBottom(1),
		hint:    NewEm(muted),
		failure: NewBold(failure),
		spinner: NewStyle(accent),
		ready:   NewBold(success),
		warn:    NewStyle(warning),
	}
}

// NewSpinner returns the UploadingView spinner styled with p.
func (p *Palette) NewSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(p.spinner))
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
