package mongodb

import (
	"errors"
	"fmt"

	apperrors "firestore-export/internal/shared/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes that mean the requested sort cannot be satisfied,
// rather than that the store is unreachable or the caller unauthorized.
const (
	codeBadValue           = 2   // malformed or unsupported sort specification
	codeSortMemoryExceeded = 292 // no index backs the sort and in-memory sorting overflowed
)

// classifyOrderedQueryError wraps sort-related server rejections into the
// recoverable ordering-unsupported class. Anything else passes through and
// stays fatal to the export.
func classifyOrderedQueryError(err error, collectionID, orderField string) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && isOrderingCode(cmdErr.Code) {
		return apperrors.NewOrderingError(
			fmt.Sprintf("store rejected ordered sample on collection %q by field %q", collectionID, orderField),
			err,
		)
	}
	return err
}

func isOrderingCode(code int32) bool {
	return code == codeBadValue || code == codeSortMemoryExceeded
}
