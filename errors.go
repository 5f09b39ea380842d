package navguard

import "errors"

var (
	// ErrClaimFallbackMissing is an exported constant or variable used by the navigation shell.
	ErrClaimFallbackMissing = errors.New("claim requirement declares neither redirect nor state fallback")
	// ErrStateNameRequired is an exported constant or variable used by the navigation shell.
	ErrStateNameRequired = errors.New("state name required")
	// ErrDuplicateState is an exported constant or variable used by the navigation shell.
	ErrDuplicateState = errors.New("state already declared")
	// ErrDuplicateDependency is an exported constant or variable used by the navigation shell.
	ErrDuplicateDependency = errors.New("dependency already declared")
	// ErrShellNotReady is an exported constant or variable used by the navigation shell.
	ErrShellNotReady = errors.New("shell not initialized")
	// ErrShellStarted is an exported constant or variable used by the navigation shell.
	ErrShellStarted = errors.New("shell already started")
)
