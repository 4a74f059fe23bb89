package main

import "errors"

// Argument errors
var (
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Statement policy errors
var (
	ErrQueryEmpty         = errors.New("empty statement")
	ErrOnlySelectAllowed  = errors.New("only SELECT queries are allowed for query_database")
	ErrOnlyDMLAllowed     = errors.New("only INSERT, UPDATE, DELETE statements are allowed")
	ErrMultipleStatements = errors.New("multiple statements are not allowed")
)

// Connection errors
var ErrConnectionFailed = errors.New("database connection failed")
