// Package upload turns a folder selection into a single upload to the processing service.
//
// A [Controller] validates the selection against the extension filter and the size budget,
// posts the eligible files with the upload form's fields, and reports the outcome on the
// event bus: [events.VideoReadyEvent] on success, [events.ErrorNotificationEvent] otherwise.
package upload
