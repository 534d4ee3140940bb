package khmer

import "errors"

// Construction-fatal sentinel errors, distinguishable via errors.Is by
// callers that want to react differently to a missing dictionary versus a
// malformed frequency file.
var (
	ErrDictionaryNotFound = errors.New("khmer: dictionary file not found")
	ErrFrequencyMalformed = errors.New("khmer: frequency file malformed")
)
