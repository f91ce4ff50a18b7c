package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// respondServiceError translates the service/repository error taxonomy into
// HTTP status codes: validation failures to 400, absence to 404, conflicts
// to 409 and everything else (storage failures) to 500.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case isNotFound(err):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	case isConflict(err):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrUserNotFound) ||
		errors.Is(err, repository.ErrCategoryNotFound) ||
		errors.Is(err, repository.ErrProductNotFound) ||
		errors.Is(err, repository.ErrOrderNotFound) ||
		errors.Is(err, repository.ErrOrderItemNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, repository.ErrUserAlreadyExists) ||
		errors.Is(err, repository.ErrCategoryAlreadyExists) ||
		errors.Is(err, repository.ErrProductSKUConflict) ||
		errors.Is(err, repository.ErrOrderNumberConflict)
}

// pathID parses the named chi URL parameter as an integer id
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
