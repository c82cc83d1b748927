package entities

import "encoding/json"

// Document is an untyped JSON-like object. It only appears at merge and
// locale-selection boundaries; everything past those converts to the typed
// Config immediately.
type Document = map[string]any

const (
	// SupportedOperation is the single operation the component serves.
	SupportedOperation = "text"
	// DefaultOutputPath is where rendered text lands when output_path is unset.
	DefaultOutputPath = "text"
	// DefaultRouting is the control routing emitted when none is configured.
	DefaultRouting = "out"
)

// Invocation is one decoded component request. State carries the session
// document stored by the host for this scope, when any exists.
type Invocation struct {
	Config      json.RawMessage `json:"config"`
	Msg         Envelope        `json:"msg"`
	Payload     any             `json:"payload"`
	State       Document        `json:"state,omitempty"`
	Connections []string        `json:"connections,omitempty"`
}

// ConfigDoc returns the configuration as an untyped document, nil when the
// configuration is absent or not an object.
func (i *Invocation) ConfigDoc() Document {
	var doc Document
	if err := json.Unmarshal(i.Config, &doc); err != nil {
		return nil
	}
	return doc
}

// TemplateSettings is the typed view of the templates configuration block.
type TemplateSettings struct {
	Text       string `json:"text"`
	OutputPath string `json:"output_path,omitempty"`
	Wrap       *bool  `json:"wrap,omitempty"`
	Routing    string `json:"routing,omitempty"`
}

// Wrapped reports the effective wrap flag; unset means true.
func (t TemplateSettings) Wrapped() bool {
	return t.Wrap == nil || *t.Wrap
}

// Config is the typed configuration document.
type Config struct {
	Templates TemplateSettings `json:"templates"`
}

// ComponentError is the error half of a result. Message arrives already
// resolved in the request locale; callers never re-translate.
type ComponentError struct {
	Kind    string         `json:"kind"`
	MsgKey  string         `json:"msg_key,omitempty"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Result is the uniform invocation outcome. Exactly one of a populated
// payload or a populated error is produced per invocation.
type Result struct {
	Payload      any             `json:"payload"`
	StateUpdates Document        `json:"state_updates"`
	Control      Document        `json:"control,omitempty"`
	Error        *ComponentError `json:"error,omitempty"`
}
