package config

import "errors"

var (
	ErrInvalidEngine      = errors.New("invalid probe engine")
	ErrInvalidExtractor   = errors.New("invalid ttl extractor")
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
)
