package httpadapter

import (
	"net/http"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrIngestion):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrBudgetExceeded):
		return http.StatusPaymentRequired
	case domain.IsKind(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
