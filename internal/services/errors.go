package services

import "errors"

// Errors returned by DeleteEventService. Failures of the stores are returned as they are.
var (
	ErrEventNotFound          = errors.New("event not found")
	ErrUserNotAuthorized      = errors.New("user is not a member of the event group")
	ErrInsufficientPermission = errors.New("user permission does not allow deleting the event")
)
