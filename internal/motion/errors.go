package motion

import "errors"

// errNaNVertex signals that a command produced a NaN coordinate. Spec.md
// §9 treats this as a tokeniser/interpretation bug, not a recoverable
// runtime condition: it aborts the traversal the same way an
// UnparsableCommand would.
var errNaNVertex = errors.New("motion: NaN coordinate reached the vertex store")
