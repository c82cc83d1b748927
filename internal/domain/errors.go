package domain

import "fmt"

// FailureKind enumerates the closed set of invocation failure classes.
type FailureKind string

const (
	FailureInvalidInput         FailureKind = "InvalidInput"
	FailureInvalidScope         FailureKind = "InvalidScope"
	FailureUnsupportedOperation FailureKind = "UnsupportedOperation"
	FailureTemplateError        FailureKind = "TemplateError"
)

// InvokeFailure is the only error type crossing the invocation pipeline.
// Each kind carries the fields its user-facing message interpolates; the
// message itself is resolved by the result assembler, in the request locale.
type InvokeFailure struct {
	Kind      FailureKind
	Raw       string         // underlying decode/validation message (InvalidInput)
	Operation string         // requested operation (UnsupportedOperation)
	Supported string         // the one supported operation (UnsupportedOperation)
	Details   map[string]any // engine details, line number included when known (TemplateError)
}

func (f *InvokeFailure) Error() string {
	switch f.Kind {
	case FailureInvalidInput:
		return fmt.Sprintf("invalid input: %s", f.Raw)
	case FailureInvalidScope:
		return "missing tenant, environment or session scope"
	case FailureUnsupportedOperation:
		return fmt.Sprintf("unsupported operation %q (supported: %q)", f.Operation, f.Supported)
	case FailureTemplateError:
		return "template render failed"
	}
	return string(f.Kind)
}

// MessageKey returns the translation key the failure's message resolves through.
func (f *InvokeFailure) MessageKey() string {
	switch f.Kind {
	case FailureInvalidInput:
		return "errors.invalid_input"
	case FailureInvalidScope:
		return "errors.missing_scope"
	case FailureUnsupportedOperation:
		return "errors.unsupported_operation"
	case FailureTemplateError:
		return "errors.template_render"
	}
	return ""
}

func InvalidInput(err error) *InvokeFailure {
	return &InvokeFailure{Kind: FailureInvalidInput, Raw: err.Error()}
}

func InvalidScope() *InvokeFailure {
	return &InvokeFailure{Kind: FailureInvalidScope}
}

func UnsupportedOperation(operation, supported string) *InvokeFailure {
	return &InvokeFailure{Kind: FailureUnsupportedOperation, Operation: operation, Supported: supported}
}

func TemplateRenderError(details map[string]any) *InvokeFailure {
	return &InvokeFailure{Kind: FailureTemplateError, Details: details}
}
