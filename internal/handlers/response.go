package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/virtualhotel/hotel-backend/internal/models"
	"github.com/virtualhotel/hotel-backend/internal/services"
)

// Responder writes response envelopes and maps service errors onto status codes
type Responder struct {
	logger    logrus.FieldLogger
	showStack bool
}

// NewResponder creates a Responder. showStack adds stack traces to 500 responses.
func NewResponder(logger logrus.FieldLogger, showStack bool) *Responder {
	return &Responder{logger: logger, showStack: showStack}
}

// OK writes a 200 envelope
func (r *Responder) OK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: data, Message: message})
}

// Created writes a 201 envelope
func (r *Responder) Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, models.APIResponse{Success: true, Data: data, Message: message})
}

// BadRequest writes a 400 envelope
func (r *Responder) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Error: message})
}

// Error maps err onto 404, 400 or 500
func (r *Responder) Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.APIResponse{Success: false, Error: err.Error()})
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Error: err.Error()})
	default:
		_ = c.Error(err)
		r.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")

		resp := models.APIResponse{Success: false, Error: "Internal server error"}
		if r.showStack {
			resp.Error = err.Error()
			resp.Stack = string(debug.Stack())
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}

// BindError writes a 400 envelope describing why the request body was rejected
func (r *Responder) BindError(c *gin.Context, err error) {
	r.BadRequest(c, describeBindError(err))
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
				continue
			}
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
		return "Validation failed: " + strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("Validation failed: %s has the wrong type", typeErr.Field)
	}

	return "Invalid request body: " + err.Error()
}

// parseIDParam reads a UUID path parameter, writing a 400 when it is malformed
func (r *Responder) parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		r.BadRequest(c, fmt.Sprintf("Invalid %s: %q", name, c.Param(name)))
		return uuid.Nil, false
	}
	return id, true
}
