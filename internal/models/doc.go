// Package models defines the transient values exchanged during one upload cycle.
//
// Nothing here is persisted; every value lives for a single page session:
//   - [File] : a candidate entry produced by the folder picker (name, size, content)
//   - [Selection] : the ordered picker result
//   - [Outcome] : the result of validating a selection, either accepted files or a rejection reason
//   - [UploadResult] : the service's reference to the generated video
//   - [PresentationState] : the two-valued mode of the result view
//   - [SelectionReport] : a per-file eligibility listing used by dry runs
package models
