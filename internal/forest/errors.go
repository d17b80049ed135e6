/*
PURPOSE:
  Sentinel errors for forest operations and persistence.

REQUIREMENTS:
  User-specified:
  - Bad cut index, missing file, malformed file and I/O failure are
    reported separately and are never fatal.

  Implementation-discovered:
  - Forest names from the (L)oad prompt must not escape the data directory.

ARCHITECTURE INTEGRATION:
  - Returned by: internal/forest (store.go)
  - Matched by: internal/session, internal/cli (errors.Is)

ERROR HANDLING:
  - Callers wrap these with fmt.Errorf("%w: ...") and keep the cause.

RELATED FILES:
  - internal/forest/store.go
  - internal/session/session.go
*/

package forest

import "errors"

var (
	// ErrInvalidIndex reports a cut at an index outside [0, len).
	ErrInvalidIndex = errors.New("invalid tree index")
	// ErrNotFound reports a load of a forest with no saved file.
	ErrNotFound = errors.New("forest not found")
	// ErrParse reports a saved file whose content is not a forest record.
	ErrParse = errors.New("malformed forest file")
	// ErrInvalidName reports a forest name that is not a bare file name.
	ErrInvalidName = errors.New("invalid forest name")
	// ErrIO reports a failed read or write of a forest file.
	ErrIO = errors.New("forest file i/o failed")
)
