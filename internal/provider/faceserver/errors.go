package faceserver

import "errors"

var (
	ErrServerUnavailable = errors.New("face server unavailable")
	ErrInvalidResponse   = errors.New("invalid response from face server")
)
