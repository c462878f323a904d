package textstream

import "errors"

// ErrUnsupportedProtocol reports a protocol value outside the four
// recognized variants. The dispatch is a closed switch, so hitting this
// means corrupted data rather than a missing case.
var ErrUnsupportedProtocol = errors.New("textstream: unsupported configuration protocol")

// ErrInvalidSink reports a nil or unwritable output sink, detected
// before any bit is written.
var ErrInvalidSink = errors.New("textstream: invalid output sink")

// ErrEmptyDestination reports a missing output file name.
var ErrEmptyDestination = errors.New("textstream: empty destination name")
