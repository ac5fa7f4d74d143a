package service

import (
	"net/http"

	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
)

var (
	// ErrManagerRoomLocked is returned for any status change on a manager room
	ErrManagerRoomLocked = apperror.NewAppError(http.StatusConflict, "Manager's room status cannot be changed")
	// ErrInvalidTransition is returned when the room state machine forbids a move
	ErrInvalidTransition = apperror.NewAppError(http.StatusConflict, "Invalid room status transition")
	// ErrUnknownLocation is returned for a branch id outside the location table
	ErrUnknownLocation = apperror.NewBadRequestError("Unknown location")
	// ErrOffline is returned by operations that only run against the cloud database
	ErrOffline = apperror.ErrOffline
)
