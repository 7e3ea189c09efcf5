package domain

import "errors"

var ErrInvalidSchema = errors.New("invalid typedef schema")
