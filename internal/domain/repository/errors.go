package repository

import "errors"

// ErrDuplicate is returned by repository implementations when a unique
// constraint is violated, so services can react without depending on the
// underlying driver.
var ErrDuplicate = errors.New("duplicate record")
