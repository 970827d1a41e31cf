package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "ev-storefront context key " + string(c)
}

// UserIDKey is the key for the authenticated user's ID in context.Context
const UserIDKey = contextKey("userID")

// UserEmailKey is the key for the authenticated user's email in context.Context
const UserEmailKey = contextKey("userEmail")

// UserRoleKey is the key for the authenticated user's role in context.Context
const UserRoleKey = contextKey("userRole")

// SessionIDKey is the key for the gateway session ID in context.Context
const SessionIDKey = contextKey("sessionID")

// AuthTokenKey is the key for the backend bearer token in context.Context
const AuthTokenKey = contextKey("authToken")

// RequestIDKey is the key for the request ID in context.Context
const RequestIDKey = contextKey("requestID")

// ComponentKey is the key for the logging component name in context.Context
const ComponentKey = contextKey("component")

// OperationKey is the key for the logging operation name in context.Context
const OperationKey = contextKey("operation")
