package httpx

import (
	"errors"
	"net/http"

	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/shared"
)

// blockedBody is the Conflict payload for a delete stopped by dependents.
type blockedBody struct {
	Deletable bool              `json:"deletable"`
	Blocking  []refint.Dependent `json:"blocking"`
}

// validationBody identifies the offending fields of a rejected payload.
type validationBody struct {
	Errors map[string]string `json:"errors"`
}

// RespondError maps the domain error taxonomy onto HTTP statuses.
// Internal errors are surfaced as a generic failure without leaking
// internal state; plain not-found stays a bare status.
func RespondError(w http.ResponseWriter, err error) {
	var valErr *shared.ValidationError
	var blocked *refint.BlockedError
	switch {
	case errors.As(err, &valErr):
		JSON(w, http.StatusBadRequest, validationBody{Errors: valErr.Fields})
	case errors.As(err, &blocked):
		JSON(w, http.StatusConflict, blockedBody{Deletable: false, Blocking: blocked.Blocking})
	case errors.Is(err, shared.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "")
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
