package knowledge

import "errors"

// ErrEmptyQuestion rejects knowledge queries with no question text.
var ErrEmptyQuestion = errors.New("question is required")
