package signing

import "errors"

var (
	ErrUnrecognizedAlgorithm = errors.New("unrecognized algorithm")
	ErrWeakKey               = errors.New("key is too weak for the algorithm")
	ErrInvalidKey            = errors.New("key is not valid for the algorithm")
	ErrInvalidSignature      = errors.New("signature has the wrong length")
)
