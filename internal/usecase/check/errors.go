package check

import "errors"

// ErrNoAppIDs indicates that the configured identifier list was empty at the
// start of the run. This is the only condition that stops a run before all
// identifiers have been attempted.
var ErrNoAppIDs = errors.New("no app ids configured")
