package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/middleware"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/responses"
	"go.uber.org/zap"
)

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	stage  string
	logger *zap.Logger
}

// CommonServicesConfig contains all dependencies needed to create CommonServices
type CommonServicesConfig struct {
	Stage  string
	Logger *zap.Logger
}

var registerFieldNames sync.Once

// NewCommonServices creates a new instance of CommonServices
func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Logger == nil {
		config.Logger = logger.ForComponent(logger.ComponentAPI)
	}
	registerFieldNames.Do(useJSONFieldNames)
	return &CommonServices{stage: config.Stage, logger: config.Logger}
}

// useJSONFieldNames makes binding errors report the wire name of a field
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// StatusFor maps an engine error to its HTTP status
func StatusFor(err error) int {
	switch taxerr.CodeOf(err) {
	case taxerr.CodeInvalidRequest, taxerr.CodeInvalidExemptionClaim:
		return http.StatusBadRequest
	case taxerr.CodeNotFound:
		return http.StatusNotFound
	case taxerr.CodeInvalidReturnState, taxerr.CodePeriodOverlap:
		return http.StatusConflict
	case taxerr.CodeUnknownJurisdiction:
		return http.StatusUnprocessableEntity
	case taxerr.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleError renders err using the engine error taxonomy. Unclassified and
// invariant errors never leak their text to the caller.
func (s *CommonServices) HandleError(c *gin.Context, err error, message string) {
	status := StatusFor(err)
	correlationID := middleware.GetCorrelationID(c)
	log := s.logger.With(
		zap.String("correlation_id", correlationID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", status),
	)

	body := responses.ErrorResponse{
		Error:         message,
		Code:          string(taxerr.CodeOf(err)),
		Fields:        taxerr.FieldsOf(err),
		CorrelationID: correlationID,
	}
	if status >= http.StatusInternalServerError {
		if status == http.StatusInternalServerError {
			log.Error(message, zap.Error(err), zap.String("stacktrace", fmt.Sprintf("%+v", err)))
		} else {
			log.Warn(message, zap.Error(err))
		}
		if body.Code == "" {
			body.Code = "internal_error"
		}
	} else {
		log.Info(message, zap.Error(err))
		body.Error = fmt.Sprintf("%s: %s", message, errorText(err))
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func errorText(err error) string {
	var te *taxerr.Error
	if errors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}

// bindJSON decodes the request body, reporting failures as InvalidRequest
// with the offending fields.
func bindJSON(c *gin.Context, target interface{}) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return bindingError(err)
	}
	return nil
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]taxerr.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, taxerr.FieldError{Field: fieldPath(fe), Message: validationMessage(fe)})
		}
		return taxerr.InvalidRequest(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return taxerr.InvalidRequest(taxerr.FieldError{Field: typeErr.Field, Message: "has the wrong type, expected " + typeErr.Type.String()})
	}
	return taxerr.InvalidRequest(taxerr.FieldError{Field: "body", Message: "must be a valid JSON document"})
}

// fieldPath drops the top-level struct name from a validator namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must have at least " + fe.Param() + " entries"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, taxerr.InvalidRequest(taxerr.FieldError{Field: name, Message: "must be a UUID"})
	}
	return id, nil
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}
