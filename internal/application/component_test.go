package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greentic-ai-org/component-templates/internal/domain"
	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
	"github.com/greentic-ai-org/component-templates/internal/infrastructure/i18n"
)

func newService() *ComponentService {
	return NewComponentService(i18n.NewTranslator())
}

func sampleInvocation(configJSON string, payload any) entities.Invocation {
	return entities.Invocation{
		Config: json.RawMessage(configJSON),
		Msg: entities.Envelope{
			ID:        "m-1",
			Tenant:    entities.TenantRef{Tenant: "acme", Env: "dev"},
			Channel:   "discord",
			SessionID: "s-1",
			Metadata:  map[string]string{},
		},
		Payload: payload,
	}
}

func TestRunRendersTemplate(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(
		`{"templates":{"text":"Hello {{payload.text}} from {{msg.tenant.tenant}}"}}`,
		entities.Document{"text": "world"},
	)

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t, entities.Document{"text": "Hello world from acme"}, result.Payload)
	assert.Equal(t, entities.Document{}, result.StateUpdates)
	assert.Equal(t, entities.Document{"routing": "out"}, result.Control)
}

func TestRunMissingFieldRendersEmpty(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(`{"templates":{"text":"[{{payload.nothing}}]"}}`, entities.Document{})

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t, entities.Document{"text": "[]"}, result.Payload)
}

func TestRunWrapDisabled(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(
		`{"templates":{"text":"plain {{payload.text}}","wrap":false}}`,
		entities.Document{"text": "reply"},
	)

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t, "plain reply", result.Payload)
	assert.Equal(t, entities.Document{"routing": "out"}, result.Control)
}

func TestRunCustomOutputPathAndRouting(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(
		`{"templates":{"text":"hi","output_path":"reply.body","routing":"next"}}`,
		nil,
	)

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t,
		entities.Document{"reply": map[string]any{"body": "hi"}},
		result.Payload)
	assert.Equal(t, entities.Document{"routing": "next"}, result.Control)
}

func TestRunRawPayloadReferenceIsEscaped(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(
		`{"templates":{"text":"{{payload}}","wrap":false}}`,
		entities.Document{"a": "b"},
	)

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t, `{&quot;a&quot;:&quot;b&quot;}`, result.Payload)
}

func TestRunTripleStachePayloadReferenceIsRaw(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(
		`{"templates":{"text":"{{{payload}}}","wrap":false}}`,
		entities.Document{"a": "b"},
	)

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t, `{"a":"b"}`, result.Payload)
}

func TestRunUnsupportedOperation(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(`{"templates":{"text":"hi"}}`, nil)

	result := svc.Run("summarize", inv)

	require.NotNil(t, result.Error)
	assert.Equal(t, string(domain.FailureUnsupportedOperation), result.Error.Kind)
	assert.Equal(t, "errors.unsupported_operation", result.Error.MsgKey)
	assert.Equal(t,
		"Operation 'summarize' is not supported; the only supported operation is 'text'.",
		result.Error.Message)
	assert.Nil(t, result.Payload)
	assert.Equal(t, entities.Document{}, result.StateUpdates)
	assert.Nil(t, result.Control)
}

func TestRunUnsupportedOperationLocalized(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(`{"locale":"ja","templates":{"text":"hi"}}`, nil)

	result := svc.Run("summarize", inv)

	require.NotNil(t, result.Error)
	assert.Equal(t,
		"操作「summarize」はサポートされていません。サポートされる操作は「text」のみです。",
		result.Error.Message)
}

func TestRunMissingScope(t *testing.T) {
	svc := newService()
	for _, clear := range []func(*entities.Envelope){
		func(e *entities.Envelope) { e.Tenant.Tenant = "" },
		func(e *entities.Envelope) { e.Tenant.Env = "" },
		func(e *entities.Envelope) { e.SessionID = "" },
	} {
		inv := sampleInvocation(`{"templates":{"text":"hi"}}`, nil)
		clear(&inv.Msg)

		result := svc.Run("text", inv)

		require.NotNil(t, result.Error)
		assert.Equal(t, string(domain.FailureInvalidScope), result.Error.Kind)
		assert.Equal(t, "errors.missing_scope", result.Error.MsgKey)
		assert.Nil(t, result.Payload)
	}
}

func TestRunMissingScopeLocalized(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(`{"locale":"ar","templates":{"text":"hi"}}`, nil)
	inv.Msg.SessionID = ""

	result := svc.Run("text", inv)

	require.NotNil(t, result.Error)
	assert.Equal(t, "الرسالة تفتقد هوية المستأجر أو البيئة أو الجلسة.", result.Error.Message)
}

func TestRunEmptyTemplateText(t *testing.T) {
	svc := newService()
	for _, configJSON := range []string{`{}`, `{"templates":{}}`, `{"templates":{"text":""}}`} {
		result := svc.Run("text", sampleInvocation(configJSON, nil))

		require.NotNil(t, result.Error, "config %s", configJSON)
		assert.Equal(t, string(domain.FailureInvalidInput), result.Error.Kind)
		assert.Equal(t, "errors.invalid_input", result.Error.MsgKey)
	}
}

func TestRunMalformedConfig(t *testing.T) {
	svc := newService()
	result := svc.Run("text", sampleInvocation(`[1,2]`, nil))

	require.NotNil(t, result.Error)
	assert.Equal(t, string(domain.FailureInvalidInput), result.Error.Kind)
	require.NotNil(t, result.Error.Details)
	assert.NotEmpty(t, result.Error.Details["error"])
}

func TestRunTemplateParseError(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(`{"templates":{"text":"{{#if payload.text}}open"}}`, entities.Document{"text": "x"})

	result := svc.Run("text", inv)

	require.NotNil(t, result.Error)
	assert.Equal(t, string(domain.FailureTemplateError), result.Error.Kind)
	assert.Equal(t, "errors.template_render", result.Error.MsgKey)
	assert.Equal(t, "The configured template could not be rendered.", result.Error.Message)
	require.NotNil(t, result.Error.Details)
	assert.NotEmpty(t, result.Error.Details["error"])
	assert.Nil(t, result.Payload)
	assert.Nil(t, result.Control)
	assert.Equal(t, entities.Document{}, result.StateUpdates)
}

func TestRunRaw(t *testing.T) {
	svc := newService()
	input := `{
		"config": {"templates": {"text": "Hi {{payload.text}}"}},
		"msg": {
			"id": "m-1",
			"tenant": {"tenant": "acme", "env": "dev"},
			"channel": "discord",
			"session_id": "s-1"
		},
		"payload": {"text": "there"}
	}`

	result := svc.RunRaw("text", []byte(input))

	require.Nil(t, result.Error)
	assert.Equal(t, entities.Document{"text": "Hi there"}, result.Payload)
}

func TestRunRawInvalidJSON(t *testing.T) {
	svc := newService()
	result := svc.RunRaw("text", []byte(`{not json`))

	require.NotNil(t, result.Error)
	assert.Equal(t, string(domain.FailureInvalidInput), result.Error.Kind)
	// Decode failures cannot trust any locale hint and resolve in the default.
	assert.Equal(t, "The request could not be decoded or is missing required fields.", result.Error.Message)
}

func TestRunRawMissingEnvelopeIdentity(t *testing.T) {
	svc := newService()
	result := svc.RunRaw("text", []byte(`{"config":{},"msg":{"id":"","channel":""}}`))

	require.NotNil(t, result.Error)
	assert.Equal(t, string(domain.FailureInvalidInput), result.Error.Kind)
}

func TestRunLocaleSmoke(t *testing.T) {
	svc := newService()
	expected := map[string]string{
		"en":    "The message is missing its tenant, environment or session identity.",
		"en-GB": "The message is missing its tenant, environment or session identity.",
		"ja":    "メッセージにテナント・環境・セッションの識別情報がありません。",
		"ar":    "الرسالة تفتقد هوية المستأجر أو البيئة أو الجلسة.",
	}
	for locale, want := range expected {
		inv := sampleInvocation(`{"locale":"`+locale+`","templates":{"text":"hi"}}`, nil)
		inv.Msg.Tenant.Env = ""

		result := svc.Run("text", inv)

		require.NotNil(t, result.Error, "locale %s", locale)
		assert.Equal(t, want, result.Error.Message, "locale %s", locale)
	}
}

func TestRunStateInContext(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(
		`{"templates":{"text":"last time: {{state.last}}"}}`,
		entities.Document{"text": "now"},
	)
	inv.State = entities.Document{"last": "weather?"}

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t, entities.Document{"text": "last time: weather?"}, result.Payload)
}

func TestRunAbsentStateRendersEmpty(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(`{"templates":{"text":"[{{state.last}}]"}}`, nil)

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t, entities.Document{"text": "[]"}, result.Payload)
}

func TestRunTenantIsolationInContext(t *testing.T) {
	svc := newService()
	inv := sampleInvocation(`{"templates":{"text":"{{msg.tenant.tenant}}/{{msg.tenant.env}}/{{msg.session_id}}"}}`, nil)
	inv.Msg.Tenant = entities.TenantRef{Tenant: "beta", Env: "prod"}
	inv.Msg.SessionID = "s-9"

	result := svc.Run("text", inv)

	require.Nil(t, result.Error)
	assert.Equal(t, entities.Document{"text": "beta/prod/s-9"}, result.Payload)
}
