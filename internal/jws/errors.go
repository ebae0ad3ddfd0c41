package jws

import "errors"

var (
	ErrMissingAlgorithm  = errors.New("header has no alg")
	ErrInvalidAlgHeader  = errors.New("alg header is not valid for this operation")
	ErrAlgorithmMismatch = errors.New("alg header does not match the expected algorithm")
	ErrInvalidPayload    = errors.New("invalid JSON")
)
