package application

import (
	"encoding/json"
	"errors"

	"github.com/greentic-ai-org/component-templates/internal/domain"
	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
	"github.com/greentic-ai-org/component-templates/internal/ports/input"
	"github.com/greentic-ai-org/component-templates/internal/ports/output"
)

var _ input.ComponentUseCase = (*ComponentService)(nil)

// ComponentService runs the template component: one operation, locale-aware
// errors, and a single result-assembly exit point shared by the success and
// failure paths.
type ComponentService struct {
	translator output.Translator
}

func NewComponentService(translator output.Translator) *ComponentService {
	return &ComponentService{translator: translator}
}

// RunRaw decodes a JSON invocation document and runs it. Decoding and
// required-envelope failures localize in "en": the locale chain is not
// trustworthy before the envelope has decoded.
func (s *ComponentService) RunRaw(operation string, inputDoc []byte) entities.Result {
	var inv entities.Invocation
	if err := json.Unmarshal(inputDoc, &inv); err != nil {
		return s.failure(domain.InvalidInput(err), "en")
	}
	if inv.Msg.ID == "" || inv.Msg.Channel == "" {
		return s.failure(domain.InvalidInput(errors.New("msg requires non-empty id and channel")), "en")
	}
	return s.Run(operation, inv)
}

// Run executes one decoded invocation and always returns a result; exactly
// one of payload or error is populated. The operation check precedes any
// decoding of the configuration, and scope failures fail closed before any
// rendering touches tenant data.
func (s *ComponentService) Run(operation string, inv entities.Invocation) entities.Result {
	locale := s.translator.SelectLocale(inv.ConfigDoc(), &inv.Msg)

	if operation != entities.SupportedOperation {
		return s.failure(domain.UnsupportedOperation(operation, entities.SupportedOperation), locale)
	}
	if !inv.Msg.HasScope() {
		return s.failure(domain.InvalidScope(), locale)
	}

	var cfg entities.Config
	if err := json.Unmarshal(inv.Config, &cfg); err != nil {
		return s.failure(domain.InvalidInput(err), locale)
	}
	if cfg.Templates.Text == "" {
		return s.failure(domain.InvalidInput(errors.New("templates.text is required and must be non-empty")), locale)
	}

	rendered, failed := renderTemplate(&cfg, buildContext(&inv))
	if failed != nil {
		return s.failure(failed, locale)
	}
	return entities.Result{
		Payload:      buildPayload(rendered, &cfg),
		StateUpdates: entities.Document{},
		Control:      buildControl(&cfg),
	}
}

// failure is the error half of the result assembler. The message is resolved
// in the request locale here; callers never re-translate. Error results carry
// an empty state_updates object and no control.
func (s *ComponentService) failure(f *domain.InvokeFailure, locale string) entities.Result {
	return entities.Result{
		StateUpdates: entities.Document{},
		Error:        s.componentError(f, locale),
	}
}

func (s *ComponentService) componentError(f *domain.InvokeFailure, locale string) *entities.ComponentError {
	ce := &entities.ComponentError{
		Kind:   string(f.Kind),
		MsgKey: f.MessageKey(),
	}
	switch f.Kind {
	case domain.FailureInvalidInput:
		ce.Message = s.translator.T(locale, f.MessageKey())
		ce.Details = map[string]any{"error": f.Raw}
	case domain.FailureUnsupportedOperation:
		ce.Message = s.translator.TF(locale, f.MessageKey(), []output.Arg{
			{Name: "operation", Value: f.Operation},
			{Name: "supported", Value: f.Supported},
		})
	case domain.FailureTemplateError:
		ce.Message = s.translator.T(locale, f.MessageKey())
		ce.Details = f.Details
	default:
		ce.Message = s.translator.T(locale, f.MessageKey())
	}
	return ce
}
