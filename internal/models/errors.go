package models

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrNotFound       = status.Errorf(codes.NotFound, "not found")
	ErrTenantNotFound = status.Errorf(codes.NotFound, "no tenant exists with that name")

	// ErrAuthNotConfigured means the tenant has no Authenticator record.
	// This is an operator problem, not a user mistake, and must be
	// reported differently from a wrong credential.
	ErrAuthNotConfigured = status.Errorf(codes.FailedPrecondition, "tenant configuration error - contact administrator")

	ErrWrongCredential  = status.Errorf(codes.Unauthenticated, "wrong credential entered")
	ErrSessionExpired   = status.Errorf(codes.Unauthenticated, "session expired or unknown")
	ErrStoreUnavailable = status.Errorf(codes.Unavailable, "document store unavailable")
	ErrMalformedPayload = status.Errorf(codes.InvalidArgument, "payload could not be decoded")
	ErrEmptyComment     = status.Errorf(codes.InvalidArgument, "comment is empty")
	ErrMissingField     = status.Errorf(codes.InvalidArgument, "missing required field")
	ErrCommentConflict  = status.Errorf(codes.Aborted, "comment update conflicted, retry")
)
