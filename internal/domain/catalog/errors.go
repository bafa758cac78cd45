package catalog

import "errors"

var (
	ErrInvalidRequirementLevel = errors.New("requirement level must be one of 0, 25, 50, 75, 100")
	ErrInheritanceCycle        = errors.New("role inheritance would form a cycle")
	ErrUnknownParentRole       = errors.New("parent role does not exist")
)
