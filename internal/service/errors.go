package service

// FailureKind classifies why a search failed. It is kept for logs only:
// callers see the same message whatever the kind.
type FailureKind string

const (
	KindCredential FailureKind = "credential"
	KindTransport  FailureKind = "transport"
	KindParse      FailureKind = "parse"
	KindSchema     FailureKind = "schema"
)

// ServiceErrorMessage is the only text a ServiceError ever exposes.
const ServiceErrorMessage = "failed to communicate with the AI service"

// ServiceError is the single opaque error returned by FindTherapists.
// Use errors.As to reach Kind and the wrapped cause for diagnostics.
type ServiceError struct {
	Kind FailureKind
	Err  error
}

func (e *ServiceError) Error() string { return ServiceErrorMessage }

func (e *ServiceError) Unwrap() error { return e.Err }

