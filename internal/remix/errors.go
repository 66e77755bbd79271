package remix

import "errors"

var ErrClosed = errors.New("remix: session closed")
