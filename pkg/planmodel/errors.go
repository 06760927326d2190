package planmodel

import "errors"

var (
	errEnvelopeNil     = errors.New("planmodel: intent envelope is nil")
	errEmptyUserID     = errors.New("planmodel: user_id must not be empty")
	errRawQueryLength  = errors.New("planmodel: raw_query must be between 1 and 4096 characters")
)
