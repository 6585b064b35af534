package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "firestore-export context key " + string(c)
}

// ProjectIDKey is the key for the source project ID in context.Context
const ProjectIDKey = contextKey("projectID")

// DatabaseIDKey is the key for the source database ID in context.Context
const DatabaseIDKey = contextKey("databaseID")

// ExportIDKey is the key for the export run ID in context.Context
const ExportIDKey = contextKey("exportID")

// ComponentKey is the key for the emitting component in context.Context
const ComponentKey = contextKey("component")

// OperationKey is the key for the current operation in context.Context
const OperationKey = contextKey("operation")
