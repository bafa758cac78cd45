package projection

import "errors"

var ErrRoleCycle = errors.New("role inheritance cycle")
