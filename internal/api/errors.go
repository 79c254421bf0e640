package api

import (
	"errors"
	"net/http"

	"github.com/victorward/dailytarot/internal/domain"
	"github.com/victorward/dailytarot/internal/render"
	"github.com/victorward/dailytarot/internal/service"
)

// MapErrorToStatusCode translates core errors into HTTP status codes.
// User-facing state-machine rejections are conflicts or bad requests;
// reveal delivery failures are upstream errors the client may retry.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSphere),
		errors.Is(err, domain.ErrInvalidChoice):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoActiveSession),
		errors.Is(err, domain.ErrAlreadyPicked),
		errors.Is(err, service.ErrNothingPicked):
		return http.StatusConflict
	case errors.Is(err, service.ErrAssetFetch),
		errors.Is(err, render.ErrRender):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the guidance string shown to the user for a
// core error. Internals never leak into responses.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidSphere):
		return "Unknown sphere: choose work, love, health or general"
	case errors.Is(err, domain.ErrInvalidChoice):
		return "Choose card 1, 2 or 3"
	case errors.Is(err, domain.ErrNoActiveSession):
		return "No reading in progress today: select a sphere first"
	case errors.Is(err, domain.ErrAlreadyPicked):
		return "Today's card is already picked, come back tomorrow"
	case errors.Is(err, service.ErrNothingPicked):
		return "No card picked yet: pick one of the three cards"
	case errors.Is(err, service.ErrAssetFetch), errors.Is(err, render.ErrRender):
		return "Could not prepare the card image, please try again"
	default:
		return "Something went wrong, please try again"
	}
}
