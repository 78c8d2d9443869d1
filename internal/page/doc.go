// Package page assembles one page session: the element tree, the event bus, the upload controller,
// the result presenter, and the folder picker that feeds them.
//
// A [Host] owns the current [Session]. Reloading throws the session away and builds a new one,
// which is the only way back to the upload layout once a video has been shown.
package page
