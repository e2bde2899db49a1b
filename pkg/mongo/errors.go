package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrEmptyConnectionURL     = errors.New("empty mongo connection URL")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrNotFound               = errors.New("mongo: document not found")
	ErrDecode                 = errors.New("mongo: failed to decode document")
)
