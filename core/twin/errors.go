package twin

import "errors"

// ErrNoData is returned when a driver has no trip history to learn from.
var ErrNoData = errors.New("no trip data for driver")
