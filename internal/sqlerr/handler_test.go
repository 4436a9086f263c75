package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name: "duplicate username",
			err: fmt.Errorf("insert user: %w", &pgconn.PgError{
				Code:           "23505",
				Severity:       "ERROR",
				TableName:      "users",
				ConstraintName: "users_username_key",
			}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "USER_ALREADY_EXISTS",
			wantMsg:    "A user with this username already exists",
		},
		{
			name: "missing contact reference",
			err: &pgconn.PgError{
				Code:       "23503",
				TableName:  "addresses",
				ColumnName: "contact_id",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ADDRESS_NOT_FOUND",
			wantMsg:    "The referenced contact does not exist",
		},
		{
			name: "not null",
			err: &pgconn.PgError{
				Code:       "23502",
				TableName:  "contacts",
				ColumnName: "first_name",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "CONTACT_REQUIRED",
			wantMsg:    "The First Name is required",
		},
		{
			name:       "named not found",
			err:        fmt.Errorf("get contact: %w", NotFound("contact")),
			wantStatus: http.StatusNotFound,
			wantCode:   "CONTACT_NOT_FOUND",
			wantMsg:    "Contact not found",
		},
		{
			name:       "bare no rows",
			err:        pgx.ErrNoRows,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Resource not found",
		},
		{
			name:       "unknown postgres error",
			err:        &pgconn.PgError{Code: "XX000"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal Server Error",
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(tt.err))
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewUnauthorizedError("Unauthorized", false)
	assert.Same(t, original, HandleError(original))
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrapped: %w", converted)))
	assert.Equal(t, SeverityError, converted.Severity)
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "username", extractColumnForUniqueViolation("users_username_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("users_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
