package usecase

import "errors"

// ErrProductNotFound is returned by repositories when no product has the requested id.
var ErrProductNotFound = errors.New("product not found")
