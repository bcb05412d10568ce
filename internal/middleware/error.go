package middleware

import (
	"errors"
	"net/http"

	"expert-test/internal/domain"
	"expert-test/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Code    string                   `json:"code"`
	Errors  []domain.ValidationError `json:"errors,omitempty"`
	Details map[string]interface{}   `json:"details,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

// ErrorHandler is the central fiber error handler. Handlers and middleware
// only return errors; this is the one place they become JSON. Internal
// detail is attached to 5xx responses only when exposeDetails is set.
func ErrorHandler(exposeDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(
			zap.String("request_id", RequestIDFromCtx(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)

		// Handle validation errors
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Validation errors occurred", zap.Int("error_count", len(validationErrs)))
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Request validation failed",
				Code:    string(domain.CodeValidation),
				Errors:  validationErrs,
			})
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := mapDomainErrorToHTTPStatus(domainErr)
			response := ErrorResponse{
				Message: domainErr.Message,
				Code:    string(domainErr.Code),
			}
			if len(domainErr.Context) > 0 {
				response.Details = domainErr.Context
			}

			if status >= http.StatusInternalServerError {
				log.Error("Domain error occurred",
					zap.String("code", string(domainErr.Code)),
					zap.String("message", domainErr.Message),
					zap.Error(domainErr.Cause),
				)
				if exposeDetails && domainErr.Cause != nil {
					response.Error = domainErr.Cause.Error()
				}
			} else {
				log.Info("Request rejected",
					zap.String("code", string(domainErr.Code)),
					zap.Int("status", status),
				)
			}
			return c.Status(status).JSON(response)
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Message: fiberErr.Message,
				Code:    fiberErrorCode(fiberErr.Code),
			})
		}

		// Handle unknown errors
		log.Error("Unknown error occurred", zap.Error(err))

		response := ErrorResponse{
			Message: "Internal server error",
			Code:    string(domain.CodeInternal),
		}
		if exposeDetails {
			response.Error = err.Error()
		}
		return c.Status(http.StatusInternalServerError).JSON(response)
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeQuestionNotFound, domain.CodeAnswerNotFound,
		domain.CodeAttemptNotFound, domain.CodeUserNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingField,
		domain.CodeInvalidFormat, domain.CodeOutOfRange,
		domain.CodeReferenceInUse, domain.CodeDuplicateUser:
		return http.StatusBadRequest
	case domain.CodeUnauthorized, domain.CodeInvalidCredentials, domain.CodeTokenExpired:
		return http.StatusUnauthorized
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func fiberErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(domain.CodeNotFound)
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnprocessableEntity:
		return string(domain.CodeInvalidInput)
	case http.StatusUnauthorized:
		return string(domain.CodeUnauthorized)
	case http.StatusForbidden:
		return string(domain.CodeForbidden)
	case http.StatusTooManyRequests:
		return string(domain.CodeRateLimited)
	default:
		return "HTTP_ERROR"
	}
}
