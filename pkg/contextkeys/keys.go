package contextkeys

type contextKey string

const (
	// FactoryIDKey holds the authenticated factory's id in the request context.
	FactoryIDKey contextKey = "factoryID"
	// IsAdminKey holds whether the session carries the admin claim.
	IsAdminKey contextKey = "isAdmin"
)
