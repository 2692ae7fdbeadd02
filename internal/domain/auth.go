package domain

// UserContext identifies the authenticated caller of an operation.
// Authentication itself happens at the gateway; the service trusts the
// identity headers and passes the resolved context explicitly.
type UserContext struct {
	UserID int64
}

// AdminContext is the capability required by admin-only operations.
// It is constructed only by the admin middleware, so a service method taking
// an AdminContext cannot be reached from an unprivileged path.
type AdminContext struct {
	UserID int64
}
