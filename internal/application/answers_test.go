package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
)

const defaultTemplate = "Hello! You said: {{payload.text}}"

func TestQASpecByMode(t *testing.T) {
	svc := newService()

	setup := svc.QASpec(entities.QAModeSetup)
	require.Len(t, setup.Questions, 1)
	assert.Equal(t, "qa.title", setup.TitleKey)
	assert.Equal(t, "templates.text", setup.Questions[0].ID)
	assert.Equal(t, "qa.text.label", setup.Questions[0].LabelKey)
	assert.Equal(t, entities.QuestionText, setup.Questions[0].Kind)
	assert.True(t, setup.Questions[0].Required)
	assert.Equal(t, defaultTemplate, setup.Questions[0].Default)

	def := svc.QASpec(entities.QAModeDefault)
	require.Len(t, def.Questions, 1)
	assert.True(t, def.Questions[0].Required)

	update := svc.QASpec(entities.QAModeUpdate)
	require.Len(t, update.Questions, 1)
	assert.False(t, update.Questions[0].Required)

	remove := svc.QASpec(entities.QAModeRemove)
	assert.Empty(t, remove.Questions)
	assert.Equal(t, "qa.title", remove.TitleKey)
}

func TestApplyAnswersObjectPreferredWholesale(t *testing.T) {
	svc := newService()
	current := entities.Document{"templates": map[string]any{"text": "old", "routing": "next"}}
	answers := map[string]any{"templates": map[string]any{"text": "new"}}

	merged := svc.ApplyAnswers(entities.QAModeUpdate, current, answers)

	// The answer document replaces the current configuration entirely.
	assert.Equal(t, entities.Document{
		"templates": entities.Document{"text": "new"},
	}, merged)
	// The inputs are not mutated.
	assert.Equal(t, "old", current["templates"].(map[string]any)["text"])
}

func TestApplyAnswersNilAnswersKeepsCurrent(t *testing.T) {
	svc := newService()
	current := entities.Document{"templates": map[string]any{"text": "keep me", "wrap": false}}

	merged := svc.ApplyAnswers(entities.QAModeUpdate, current, nil)

	assert.Equal(t, entities.Document{
		"templates": entities.Document{"text": "keep me", "wrap": false},
	}, merged)
}

func TestApplyAnswersDottedKeysMigrate(t *testing.T) {
	svc := newService()
	answers := map[string]any{
		"templates.text":        "dotted",
		"templates.output_path": "reply.body",
		"templates.wrap":        false,
		"templates.routing":     "next",
	}

	merged := svc.ApplyAnswers(entities.QAModeSetup, nil, answers)

	assert.Equal(t, entities.Document{
		"templates": entities.Document{
			"text":        "dotted",
			"output_path": "reply.body",
			"wrap":        false,
			"routing":     "next",
		},
	}, merged)
}

func TestApplyAnswersDottedKeyDoesNotClobberNested(t *testing.T) {
	svc := newService()
	answers := map[string]any{
		"templates":      map[string]any{"text": "nested wins"},
		"templates.text": "dotted loses",
	}

	merged := svc.ApplyAnswers(entities.QAModeSetup, nil, answers)

	templates := merged["templates"].(entities.Document)
	assert.Equal(t, "nested wins", templates["text"])
}

func TestApplyAnswersInjectsDefaultText(t *testing.T) {
	svc := newService()

	for _, answers := range []any{
		nil,
		map[string]any{},
		map[string]any{"templates": map[string]any{"text": "   "}},
		map[string]any{"templates": map[string]any{"text": 42}},
	} {
		merged := svc.ApplyAnswers(entities.QAModeSetup, nil, answers)
		templates := merged["templates"].(entities.Document)
		assert.Equal(t, defaultTemplate, templates["text"], "answers %v", answers)
	}
}

func TestExtractTemplateTextAnswer(t *testing.T) {
	svc := newService()
	current := entities.Document{"templates": map[string]any{"text": "old", "routing": "next"}}

	cases := []struct {
		name   string
		answer any
		want   string
	}{
		{"bare string", "from string", "from string"},
		{"text field", map[string]any{"text": "from text"}, "from text"},
		{"template field", map[string]any{"template": "from template"}, "from template"},
		{"dotted field", map[string]any{"templates.text": "from dotted"}, "from dotted"},
		{"nested field", map[string]any{"templates": map[string]any{"text": "from nested"}}, "from nested"},
		{
			"text beats template",
			map[string]any{"template": "lower", "text": "higher"},
			"higher",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := svc.ExtractTemplateTextAnswer(current, tc.answer)
			templates := out["templates"].(entities.Document)
			assert.Equal(t, tc.want, templates["text"])
			// Sibling settings survive.
			assert.Equal(t, "next", templates["routing"])
		})
	}
}

func TestExtractTemplateTextAnswerUnusableAnswer(t *testing.T) {
	svc := newService()
	current := entities.Document{"templates": map[string]any{"text": "old"}}

	out := svc.ExtractTemplateTextAnswer(current, 42)

	assert.Equal(t, "old", out["templates"].(map[string]any)["text"])
}

func TestI18nKeysAllResolve(t *testing.T) {
	svc := newService()

	keys := svc.I18nKeys()
	require.NotEmpty(t, keys)
	assert.IsIncreasing(t, keys)

	tr := newService().translator
	for _, key := range keys {
		assert.NotEqual(t, key, tr.T("en", key), "key %s must resolve in the default locale", key)
	}
}
