package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNetworkMismatch is returned when the node reports a different chain than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrContractNotFound is returned when a contract artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrMethodNotFound is returned when an ABI has no method with the requested name
	ErrMethodNotFound = errors.New("method not found")

	// ErrMissingSigner is returned when a transaction must be sent but no key is configured
	ErrMissingSigner = errors.New("no signer configured")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrNoCode is returned when an address holds no contract code
	ErrNoCode = errors.New("no contract code at address")

	// ErrAborted is returned when the user declines a confirmation prompt
	ErrAborted = errors.New("aborted by user")
)

// ContractNotFoundErr carries the name that was looked up and close matches
type ContractNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e ContractNotFoundErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("contract %s not found", e.Name)
	}
	return fmt.Sprintf("contract %s not found, did you mean: %s", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e ContractNotFoundErr) Unwrap() error {
	return ErrContractNotFound
}

// MethodSignatureErr is returned when a method exists but its inputs don't fit the call
type MethodSignatureErr struct {
	Method   string
	Expected string
	Actual   string
}

func (e MethodSignatureErr) Error() string {
	return fmt.Sprintf("method %s has signature %s, expected %s", e.Method, e.Actual, e.Expected)
}
