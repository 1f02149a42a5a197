package cosign

import (
	"github.com/iov-one/weave/errors"
)

// cosign reserves 1500~1520
var (
	ErrAlreadyInitialized = errors.Register(1500, "registry already initialized")
	ErrDocumentCompleted  = errors.Register(1501, "document completed")
	ErrAlreadySigned      = errors.Register(1502, "document already signed")
	ErrDocumentNotFound   = errors.Register(1503, "document not found")
	ErrCounterOverflow    = errors.Register(1504, "counter overflow")
)
