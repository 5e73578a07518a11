package async

import "errors"

// ErrTimeout is returned by Future.AwaitWithTimeout when the operation
// does not complete within the given duration.
var ErrTimeout = errors.New("async operation timed out")
