package db

import "fmt"

type VeldDatabaseErrorType int

const (
	ENTITY_NOT_FOUND VeldDatabaseErrorType = 1
	ENTITY_ALREADY_EXISTS VeldDatabaseErrorType = 2
	DATABASE_NOT_SUPPORTED VeldDatabaseErrorType = 3
)

func (vdet VeldDatabaseErrorType) String() string {
	switch vdet {
	case ENTITY_NOT_FOUND: return "ENTITY_NOT_FOUND"
	case ENTITY_ALREADY_EXISTS: return "ENTITY_ALREADY_EXISTS"
	case DATABASE_NOT_SUPPORTED: return "DATABASE_NOT_SUPPORTED"
	}
	return "UNKNOWN_ERROR"
}

type VeldDatabaseError struct {
	ErrorType VeldDatabaseErrorType
	ErrorMsg string
}

func IsVeldDatabaseError(e error) bool {
	_, ok := e.(*VeldDatabaseError)
	return ok
}

func (vde VeldDatabaseError) Error() string {
	return fmt.Sprintf("%s: %s", vde.ErrorType, vde.ErrorMsg)
}

func NewVeldDatabaseError(t VeldDatabaseErrorType, msg string) *VeldDatabaseError {
	return &VeldDatabaseError{
		ErrorType: t,
		ErrorMsg: msg,
	}
}

// shared sentinels. backends return these for the cases they name so
// call sites can compare with plain ==.
var ErrEntityNotFound = NewVeldDatabaseError(ENTITY_NOT_FOUND, "entity not found")
var ErrEntityAlreadyExists = NewVeldDatabaseError(ENTITY_ALREADY_EXISTS, "entity already exists")
var ErrDatabaseNotSupported = NewVeldDatabaseError(DATABASE_NOT_SUPPORTED, "database not supported")
