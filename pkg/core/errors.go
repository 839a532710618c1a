package core

import "errors"

// ErrDomain reports a mathematically invalid input, such as normalizing a
// zero-length vector or building a camera with no view direction.
var ErrDomain = errors.New("domain error")

// ErrConfiguration reports an incomplete or malformed setup detected before
// any rendering or encoding work begins.
var ErrConfiguration = errors.New("configuration error")
