package service

import (
	"github.com/deppfellow/contacts-api/internal/sqlerr"
	"github.com/google/uuid"
)

// parseID turns a path id into a UUID. A malformed id names nothing, so it
// is reported as not found rather than as a bad request.
func parseID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, sqlerr.HandleError(sqlerr.NotFound(entity))
	}
	return id, nil
}
