package core

// InvalidArgumentError reports a request rejected before any page was
// fetched: an identity depth out of range or a malformed bound query.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}
