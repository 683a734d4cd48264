package tasks

import (
	"errors"
	"fmt"
)

// NotInTeamMessage is the literal the backend reports for users without a team.
const NotInTeamMessage = "User is not part of any team"

// NetworkError is a transport or decoding failure.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is returned for 401 responses or a missing token.
type AuthError struct {
	Op      string
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unauthorized", e.Op)
	}
	return fmt.Sprintf("%s: unauthorized: %s", e.Op, e.Message)
}

// DomainError is a server-reported condition callers may turn into behaviour.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Message == e.Message
}

// ErrNotInTeam triggers the personal-task fallback.
var ErrNotInTeam = &DomainError{Message: NotInTeamMessage}

// ServerError is any other non-2xx response.
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: server error (status %d): %s", e.Op, e.Status, e.Message)
}

func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsNotInTeam(err error) bool {
	return errors.Is(err, ErrNotInTeam)
}
