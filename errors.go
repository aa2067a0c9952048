package dirvmp

import "errors"

//ErrInvalidArgument marks a malformed input: bad shape, probability outside
//[0,1], non-unit sum, or a non-positive natural parameter. Detected at the
//boundary of each operation before any state is touched.
var ErrInvalidArgument = errors.New("invalid argument")

//ErrNotImplemented marks an operation the distribution does not define
var ErrNotImplemented = errors.New("not implemented")
