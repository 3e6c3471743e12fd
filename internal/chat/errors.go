package chat

import "errors"

// ErrUnderStopCondition - returned when the server is shutting down and
// will not accept new connections; the caller owns closing them.
var ErrUnderStopCondition = errors.New("chat.Server: under stop condition")
