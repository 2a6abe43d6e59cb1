package domain

import "github.com/m-mizutani/goerr/v2"

var (
	ErrMissingToken  = goerr.New("GitHub access token is not set")
	ErrConfiguration = goerr.New("configuration error")
)
