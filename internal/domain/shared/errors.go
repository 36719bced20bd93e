package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound        = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized    = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState    = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrNetwork         = NewDomainError("NETWORK_ERROR", "Remote service request failed")
	ErrIntegration     = NewDomainError("INTEGRATION_ERROR", "Remote service returned a malformed response")
	ErrEmptyCart       = NewDomainError("EMPTY_CART", "Cart contains no items")
	ErrMissingIdentity = NewDomainError("MISSING_IDENTITY", "An authenticated identity is required")
	ErrEmptyAddress    = NewDomainError("EMPTY_ADDRESS", "Delivery address cannot be empty")
)
