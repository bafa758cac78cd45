package qualification

import "errors"

var (
	ErrUnknownPlanStatus    = errors.New("unknown plan status")
	ErrUnknownMeasureStatus = errors.New("unknown measure status")
)
