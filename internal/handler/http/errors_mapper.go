package http

import (
	"errors"
	"net/http"

	"github.com/mobilenest/nestauth/internal/service"
	"github.com/mobilenest/nestauth/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrMissingCredentials:      http.StatusBadRequest,
	service.ErrCredentialMismatch:      http.StatusUnauthorized,
	service.ErrPrincipalNotFound:       http.StatusUnauthorized,
	service.ErrAccountInactive:         http.StatusForbidden,
	service.ErrNotAuthenticated:        http.StatusUnauthorized,
	service.ErrChangeNotSupported:      http.StatusForbidden,
	service.ErrPasswordTooShort:        http.StatusBadRequest,
	service.ErrPasswordConfirmMismatch: http.StatusBadRequest,

	store.ErrStoreUnavailable: http.StatusServiceUnavailable,
	store.ErrAdminNotFound:    http.StatusUnauthorized,
	store.ErrUserNotFound:     http.StatusUnauthorized,
	store.ErrNothingUpdated:   http.StatusInternalServerError,
	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
