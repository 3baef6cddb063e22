package errors

// Kind is the stable machine readable category carried by every error
// response.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindInvalidState    Kind = "INVALID_STATE"
	KindValidation      Kind = "VALIDATION"
	KindRateLimited     Kind = "RATE_LIMITED"
	KindTransient       Kind = "TRANSIENT"
)

const (
	MessageUnauthorized = "Unauthorized"
	MessageForbidden    = "Forbidden"
)
