package graph

// resolverError carries a machine-readable code (and optionally the
// offending arguments) to the client in the GraphQL error extensions.
type resolverError struct {
	code    string
	message string
	args    map[string]any
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]any {
	ext := map[string]any{"code": e.code}
	if e.args != nil {
		ext["invalidArgs"] = e.args
	}
	return ext
}

func errUnauthenticated() error {
	return &resolverError{code: "UNAUTHENTICATED", message: "not authenticated"}
}

func errInvalidCredentials() error {
	return &resolverError{code: "INVALID_CREDENTIALS", message: "wrong credentials"}
}

// errBadUserInput wraps a rejected write or failed validation, carrying the
// original arguments so the client can correct them.
func errBadUserInput(message string, args map[string]any) error {
	return &resolverError{code: "BAD_USER_INPUT", message: message, args: args}
}
