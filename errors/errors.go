package errors

import "fmt"

var (
	ErrMissingIdentity    = fmt.Errorf("participant has no handle")
	ErrAlreadyWaiting     = fmt.Errorf("participant is already searching for a partner")
	ErrAlreadyActive      = fmt.Errorf("participant is already paired")
	ErrNoActiveSession    = fmt.Errorf("no active session")
	ErrPartnerUnreachable = fmt.Errorf("partner unreachable")
	ErrInvalidContent     = fmt.Errorf("invalid content")
	ErrReservedContent    = fmt.Errorf("reserved phrase cannot be relayed")
	ErrDeliveryFailed     = fmt.Errorf("delivery failed")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
)
