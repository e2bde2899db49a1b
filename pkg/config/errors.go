package config

import "errors"

var (
	ErrParsingConfig     = errors.New("failed to parse environment variables into config")
	ErrEnvFile           = errors.New("failed to load env file")
	ErrInvalidPagination = errors.New("invalid pagination configuration")
	ErrInvalidTaxonomy   = errors.New("invalid taxonomy configuration")
)
