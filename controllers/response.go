package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/karmic/meals-api/middleware"
	"github.com/karmic/meals-api/services"
	"github.com/rs/zerolog/log"
)

func init() {
	// Report binding errors with JSON field names instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// errorResponse writes the standard failure envelope
func errorResponse(c *gin.Context, status int, code, message string, details interface{}) {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}

// respondBindError reports a request body that could not be bound or failed
// its binding rules. Rule failures are reported per field.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", fieldErrors(verrs))
		return
	}
	errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", err.Error())
}

// respondError maps a service error to a status code. Anything that is not a
// known service error is logged and reported as a 500 with fallback as message.
func respondError(c *gin.Context, err error, fallback string) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var authErr *services.AuthenticationError

	switch {
	case errors.As(err, &validationErr):
		errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", validationErr.Fields)
	case errors.As(err, &notFoundErr):
		errorResponse(c, http.StatusNotFound, notFoundCode(notFoundErr.Resource), notFoundMessage(notFoundErr.Resource), nil)
	case errors.As(err, &authErr):
		errorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", authErr.Error(), nil)
	case errors.Is(err, services.ErrReportStorageUnavailable):
		errorResponse(c, http.StatusServiceUnavailable, "REPORT_STORAGE_UNAVAILABLE", "Report storage is not configured", nil)
	default:
		_ = c.Error(err)
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg(fallback)
		errorResponse(c, http.StatusInternalServerError, "DATABASE_ERROR", fallback, nil)
	}
}

// parseIDParam reads a positive integer path parameter, writing a 400 on failure
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		errorResponse(c, http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("Invalid %s", name), nil)
		return 0, false
	}
	return uint(id), true
}

func fieldErrors(verrs validator.ValidationErrors) map[string][]string {
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		// Drop the request struct name
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		fields[field] = append(fields[field], fieldMessage(fe))
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s elements.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

func notFoundCode(resource string) string {
	return strings.ToUpper(strings.ReplaceAll(resource, " ", "_")) + "_NOT_FOUND"
}

func notFoundMessage(resource string) string {
	if resource == "" {
		return "Not found"
	}
	return strings.ToUpper(resource[:1]) + resource[1:] + " not found"
}
