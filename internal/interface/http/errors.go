package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/internal/application"
	pginfra "github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
	"github.com/oksasatya/portfolio-backend/pkg/response"
	"github.com/oksasatya/portfolio-backend/pkg/validation"
)

// fail maps service errors to the response envelope. Unknown errors are
// logged and reported as 500 without their text.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "not found", "not_found", nil)
	case errors.Is(err, application.ErrInvalidInput):
		response.Fail(c, http.StatusUnprocessableEntity, err.Error(), "invalid_input", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, "invalid credentials", "invalid_credentials", nil)
	case errors.Is(err, application.ErrStorageDisabled):
		response.Fail(c, http.StatusServiceUnavailable, "uploads are disabled", "storage_disabled", nil)
	case errors.Is(err, helpers.ErrObjectExists):
		response.Fail(c, http.StatusConflict, "object already exists", "conflict", nil)
	case pginfra.IsUniqueViolation(err):
		conflict(c, err)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			}).Error("request failed")
		}
		response.Fail(c, http.StatusInternalServerError, "internal error", "internal", nil)
	}
}

func badRequest(c *gin.Context, err error) {
	response.Fail(c, http.StatusBadRequest, "invalid payload", "invalid_payload", validation.ToDetails(err))
}

func notFound(c *gin.Context, what string) {
	response.Fail(c, http.StatusNotFound, what+" not found", "not_found", nil)
}

// conflict reports a unique constraint hit with the store's detail, e.g.
// "Key (slug)=(api) already exists.", keyed by the offending column.
func conflict(c *gin.Context, err error) {
	pgErr, _ := pginfra.UniqueViolation(err)
	msg := strings.TrimSpace(pgErr.Detail)
	if msg == "" {
		msg = "already exists"
	}
	field := constraintField(pgErr.TableName, pgErr.ConstraintName)
	response.Fail(c, http.StatusConflict, msg, "conflict", map[string]string{field: "is already taken"})
}

// constraintField maps Postgres' default "<table>_<column>_key" names back
// to the column.
func constraintField(table, constraint string) string {
	if constraint == "" {
		return "constraint"
	}
	field := strings.TrimSuffix(constraint, "_key")
	if table != "" {
		field = strings.TrimPrefix(field, table+"_")
	}
	return field
}

// pathID returns the :id param when it is a well-formed UUID. Anything else
// cannot name a row, so it answers 404 without touching the store.
func pathID(c *gin.Context, what string) (string, bool) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		notFound(c, what)
		return "", false
	}
	return id, true
}
