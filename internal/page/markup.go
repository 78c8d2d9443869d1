package page

import (
	"github.com/desertthunder/facelapse/internal/dom"
	"github.com/desertthunder/facelapse/internal/present"
	"github.com/desertthunder/facelapse/internal/services"
	"github.com/desertthunder/facelapse/internal/upload"
)

// Initial copy shown on a fresh page.
const (
	IntroText    = "Select a folder of photos to create your faceLAPSE."
	FileTypeNote = "Only JPG and JPEG files are used. Maximum total size is 150 MB."
	ButtonLabel  = "Upload Folder"
	RestartLabel = "Start New"
	DownloadText = "Download"
)

// NewDocument builds the initial page markup with the upload form set to sortOrder.
func NewDocument(sortOrder string) *dom.Document {
	doc := dom.NewDocument()

	doc.Create(present.MainContainerID, "flex", "flex-col", "items-center", "justify-center", "min-h-dvh")
	doc.Create(present.VideoContainerID, "mx-auto", "max-w-2xl")
	doc.Create(present.ControlsContainerID, "flex", "flex-col", "items-center", "w-full")

	doc.Create(present.VideoID).SetDisplay(dom.DisplayNone)
	doc.Create(present.PlaceholderID)
	doc.Create(present.StatusID).SetText(IntroText)

	actions := doc.Create(present.ActionsID)
	actions.SetDisplay(dom.DisplayNone)
	doc.Create(present.DownloadID).SetText(DownloadText)
	doc.Create(present.RestartID).SetText(RestartLabel)

	doc.Create(present.FileTypeNoteID).SetText(FileTypeNote)

	form := doc.Create(upload.FormID)
	form.SetValue(services.SortOrderField, sortOrder)
	doc.Create(upload.ButtonID).SetText(ButtonLabel)
	doc.Create(upload.InputID).SetDisplay(dom.DisplayNone)

	return doc
}
