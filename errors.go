package bisect

import "errors"

// ErrBatchLength is returned when a batched operation's output slice length
// does not match its query slice length.
var ErrBatchLength = errors.New("bisect: output length does not match batch length")
