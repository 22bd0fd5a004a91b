package errors

import (
	"net/http"
)

func BadRequest() ErrorEnricher { return WithCode(http.StatusBadRequest) }
func Forbidden() ErrorEnricher  { return WithCode(http.StatusForbidden) }
func NotFound() ErrorEnricher   { return WithCode(http.StatusNotFound) }
func Conflict() ErrorEnricher   { return WithCode(http.StatusConflict) }

func hasCode(err error, code int) bool {
	if err, ok := err.(Error); ok {
		return err.Code() == code
	}
	return false
}

func IsBadRequest(err error) bool { return hasCode(err, http.StatusBadRequest) }
func IsForbidden(err error) bool  { return hasCode(err, http.StatusForbidden) }
func IsNotFound(err error) bool   { return hasCode(err, http.StatusNotFound) }
func IsConflict(err error) bool   { return hasCode(err, http.StatusConflict) }
