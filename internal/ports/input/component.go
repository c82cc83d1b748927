package input

import (
	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
)

// ComponentUseCase is the single-operation template component contract.
// Run and RunRaw always return a result; failures travel inside it as a
// localized ComponentError, never as a Go error.
type ComponentUseCase interface {
	// Run executes one decoded invocation.
	Run(operation string, inv entities.Invocation) entities.Result
	// RunRaw decodes a JSON invocation document and runs it. Decode failures
	// are reported in the "en" locale, since no locale can be resolved from a
	// document that did not decode.
	RunRaw(operation string, input []byte) entities.Result
	// QASpec returns the question list for a setup mode.
	QASpec(mode entities.QAMode) entities.QASpec
	// ApplyAnswers merges submitted answers into the current configuration
	// and normalizes the result against the configuration schema.
	ApplyAnswers(mode entities.QAMode, current entities.Document, answers any) entities.Document
	// ExtractTemplateTextAnswer sets only templates.text from a bare-string
	// or structured answer, leaving every other field untouched.
	ExtractTemplateTextAnswer(current entities.Document, answer any) entities.Document
	// I18nKeys enumerates every translation key the component can reference.
	I18nKeys() []string
}
