package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/facelapse/internal/events"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgBusEvent MsgKind = iota
	MsgUploadDone
	MsgDownloadDone
	MsgOpened
)

// busEventMsg is the constructor for [MsgBusEvent]
func busEventMsg(ev events.Event) Msg {
	return Msg{kind: MsgBusEvent, data: ev}
}

// uploadDoneMsg is the constructor for [MsgUploadDone]
func uploadDoneMsg(err error) Msg {
	return Msg{kind: MsgUploadDone, data: err}
}

// downloadDoneMsg is the constructor for [MsgDownloadDone]
func downloadDoneMsg(path string, err error) Msg {
	return Msg{
		kind: MsgDownloadDone,
		data: struct {
			path string
			err  error
		}{path, err},
	}
}

// openedMsg is the constructor for [MsgOpened]
func openedMsg(err error) Msg {
	return Msg{kind: MsgOpened, data: err}
}
