// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI renders one page session from [page.Host] and drives it the way a user drives the web page:
//  1. [SelectView] : Type a folder path, pick the sort order, and upload
//  2. [UploadingView] : Wait on the processing service while a spinner runs
//  3. [ResultView] : Open, download, or start over with the generated video
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Bus events are forwarded onto a buffered channel by the host, so error notifications reach the view without blocking the upload.
//
// Keyboard help is displayed via charmbracelet/bubbles/help.
package ui
