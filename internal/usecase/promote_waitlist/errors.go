package promote_waitlist

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("promote_waitlist: internal error")

	// errSkipped кандидат больше не в листе ожидания или не помещается в другую смену
	errSkipped = errors.New("promote_waitlist: candidate skipped")
)
