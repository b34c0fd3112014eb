package priority

import "errors"

// ErrNotFound is returned when a driver is absent from a ranked collection.
var ErrNotFound = errors.New("driver not found")
