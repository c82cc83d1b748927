package application

import (
	"sort"
	"strings"

	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
)

// defaultTextKey resolves, in the default locale, the template injected when
// a configuration reaches normalization without usable text.
const defaultTextKey = "qa.text.default"

// QASpec returns the question list for a mode. Setup and default ask for the
// template text and require it; update asks but an empty answer keeps the
// existing text; remove asks nothing. The merge algorithm itself is
// mode-independent.
func (s *ComponentService) QASpec(mode entities.QAMode) entities.QASpec {
	spec := entities.QASpec{
		Mode:     mode,
		TitleKey: "qa.title",
	}
	if mode == entities.QAModeRemove {
		return spec
	}
	spec.Questions = []entities.Question{{
		ID:       "templates.text",
		LabelKey: "qa.text.label",
		Kind:     entities.QuestionText,
		Required: mode != entities.QAModeUpdate,
		Default:  s.translator.T("en", defaultTextKey),
	}}
	return spec
}

// ApplyAnswers merges submitted answers into the current configuration and
// normalizes the result so it always satisfies the schema. An object answer
// document is preferred wholesale; otherwise the current configuration is
// the base; otherwise an empty object.
func (s *ComponentService) ApplyAnswers(mode entities.QAMode, current entities.Document, answers any) entities.Document {
	_ = mode
	return s.normalizeConfigForSchema(mergeAnswers(current, answers))
}

func mergeAnswers(current entities.Document, answers any) entities.Document {
	var base entities.Document
	if doc, ok := answers.(map[string]any); ok {
		base = doc
	} else if current != nil {
		base = current
	}
	merged := entities.Document{}
	for k, v := range base {
		merged[k] = v
	}
	return merged
}

// normalizeConfigForSchema guarantees the document satisfies the schema's
// shape constraints: a templates object exists, flat "templates.<field>"
// keys migrate into it without clobbering nested values, and missing or
// blank text receives the localized default template.
func (s *ComponentService) normalizeConfigForSchema(doc entities.Document) entities.Document {
	templates := entities.Document{}
	if nested, ok := doc["templates"].(map[string]any); ok {
		for k, v := range nested {
			templates[k] = v
		}
	}
	delete(doc, "templates")

	for _, field := range []string{"output_path", "wrap", "routing", "text"} {
		dotted := "templates." + field
		if v, ok := doc[dotted]; ok {
			delete(doc, dotted)
			if _, exists := templates[field]; !exists {
				templates[field] = v
			}
		}
	}

	if text, _ := templates["text"].(string); strings.TrimSpace(text) == "" {
		templates["text"] = s.translator.T("en", defaultTextKey)
	}

	doc["templates"] = templates
	return doc
}

// ExtractTemplateTextAnswer reads a bare-string or structured answer and sets
// only templates.text on the current configuration, leaving all other fields
// untouched. Structured answers are consulted in precedence order: text,
// template, dotted "templates.text", nested templates.text.
func (s *ComponentService) ExtractTemplateTextAnswer(current entities.Document, answer any) entities.Document {
	out := entities.Document{}
	for k, v := range current {
		out[k] = v
	}
	text, ok := templateTextFromAnswer(answer)
	if !ok {
		return out
	}
	templates := entities.Document{}
	if nested, okNested := out["templates"].(map[string]any); okNested {
		for k, v := range nested {
			templates[k] = v
		}
	}
	templates["text"] = text
	out["templates"] = templates
	return out
}

func templateTextFromAnswer(answer any) (string, bool) {
	switch v := answer.(type) {
	case string:
		return v, true
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return text, true
		}
		if text, ok := v["template"].(string); ok {
			return text, true
		}
		if text, ok := v["templates.text"].(string); ok {
			return text, true
		}
		if nested, ok := v["templates"].(map[string]any); ok {
			if text, ok := nested["text"].(string); ok {
				return text, true
			}
		}
	}
	return "", false
}

// I18nKeys enumerates every translation key the component can reference: the
// full default-locale catalog plus the keys of every QA spec. Each returned
// key must resolve in the default locale.
func (s *ComponentService) I18nKeys() []string {
	seen := map[string]struct{}{}
	for _, key := range s.translator.Keys("en") {
		seen[key] = struct{}{}
	}
	modes := []entities.QAMode{
		entities.QAModeDefault,
		entities.QAModeSetup,
		entities.QAModeUpdate,
		entities.QAModeRemove,
	}
	for _, mode := range modes {
		for _, key := range s.QASpec(mode).I18nKeys() {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
