package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrBadGateway           = http.StatusBadGateway
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrUnauthorized            = errors.New("Forbidden access")
	ErrNotFound                = errors.New("Resource not found")
	ErrAccountNotFound         = errors.New("Account not found")
	ErrResellerNotFound        = errors.New("Reseller not found")
	ErrUsernameAlreadyExists   = errors.New("Username has already been used")
	ErrPhoneAlreadyExists      = errors.New("Phone number has already been used")
	ErrEmailAlreadyExists      = errors.New("Email has already been used")
	ErrResellerAlreadyExists   = errors.New("Reseller already exists for this account")
	ErrInvalidCredentials      = errors.New("Username or password is incorrect")
	ErrAccountNotApproved      = errors.New("Account is not approved for login")
	ErrResellerNotPending      = errors.New("Reseller is not in pending status")
	ErrResellerAlreadyDeleted  = errors.New("Reseller is already deleted")
	ErrResellerNotDeleted      = errors.New("Reseller is not deleted")
	ErrInvalidEvent            = errors.New("Event payload is invalid")
	ErrAccountServiceDown      = errors.New("Account service is unavailable")
	ErrMissingServiceKey       = errors.New("Missing or invalid service key")
	ErrMissingAccountID        = errors.New("Missing or invalid account id header")
)

var errorMap = map[error]int{
	ErrInternalServer:         ErrStatusInternalServer,
	ErrClient:                 ErrStatusClient,
	ErrUnauthorized:           ErrStatusNoPermission,
	ErrNotFound:               ErrStatusNotFound,
	ErrAccountNotFound:        ErrStatusNotFound,
	ErrResellerNotFound:       ErrStatusNotFound,
	ErrUsernameAlreadyExists:  ErrStatusConflict,
	ErrPhoneAlreadyExists:     ErrStatusConflict,
	ErrEmailAlreadyExists:     ErrStatusConflict,
	ErrResellerAlreadyExists:  ErrStatusConflict,
	ErrInvalidCredentials:     ErrStatusUnauthorized,
	ErrAccountNotApproved:     ErrStatusNoPermission,
	ErrResellerNotPending:     ErrStatusClient,
	ErrResellerAlreadyDeleted: ErrStatusClient,
	ErrResellerNotDeleted:     ErrStatusClient,
	ErrInvalidEvent:           ErrStatusClient,
	ErrAccountServiceDown:     ErrBadGateway,
	ErrMissingServiceKey:      ErrStatusUnauthorized,
	ErrMissingAccountID:       ErrStatusClient,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
