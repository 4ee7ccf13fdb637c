package viewfactor

import "errors"

// ErrInvalidGeometry is returned when the altitude or model parameters do not
// describe a plate above the Earth's surface, or when an inverse
// trigonometric step would leave its domain. It signals a caller error and is
// never transient.
var ErrInvalidGeometry = errors.New("invalid geometry")
