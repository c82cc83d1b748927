package application

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/mailgun/raymond/v2"

	"github.com/greentic-ai-org/component-templates/internal/domain"
	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
)

// templateRewrites maps the ambiguous raw-payload reference forms onto the
// serialized form. The raw payload may be a composite document, whose
// literal insertion is ill-defined; rendering the compact JSON string through
// the escaped form is the one well-defined reading, so quote characters come
// out entity-escaped. A fixed substring table applied once, not a parser.
var templateRewrites = strings.NewReplacer(
	"{{{ payload }}}", "{{{payload_json}}}",
	"{{{payload}}}", "{{{payload_json}}}",
	"{{ payload }}", "{{payload_json}}",
	"{{payload}}", "{{payload_json}}",
)

var lineNoPattern = regexp.MustCompile(`line (\d+)`)

// normalizeTemplate applies the rewrite table before the source reaches the
// engine.
func normalizeTemplate(raw string) string {
	return templateRewrites.Replace(raw)
}

// buildContext assembles the document the template renders against: the
// envelope under msg, the raw payload, its compact serialization under
// payload_json, and the stored session state under state.
func buildContext(inv *entities.Invocation) entities.Document {
	msgDoc := entities.Document{}
	if raw, err := json.Marshal(&inv.Msg); err == nil {
		_ = json.Unmarshal(raw, &msgDoc)
	}
	payloadJSON := ""
	if raw, err := json.Marshal(inv.Payload); err == nil {
		payloadJSON = string(raw)
	}
	state := inv.State
	if state == nil {
		state = entities.Document{}
	}
	return entities.Document{
		"msg":          msgDoc,
		"payload":      inv.Payload,
		"payload_json": payloadJSON,
		"state":        state,
	}
}

// renderTemplate renders the configured text in non-strict mode: a reference
// to a missing field produces an empty string, only structurally invalid
// source fails.
func renderTemplate(cfg *entities.Config, context entities.Document) (string, *domain.InvokeFailure) {
	source := normalizeTemplate(cfg.Templates.Text)
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", templateFailure(err)
	}
	rendered, err := tpl.Exec(context)
	if err != nil {
		return "", templateFailure(err)
	}
	return rendered, nil
}

// templateFailure captures the engine message, plus the 1-based line when the
// engine reports one.
func templateFailure(err error) *domain.InvokeFailure {
	details := map[string]any{"error": err.Error()}
	if m := lineNoPattern.FindStringSubmatch(err.Error()); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			details["line"] = line
		}
	}
	return domain.TemplateRenderError(details)
}

// buildPayload shapes the rendered text: the bare string when wrap is off,
// otherwise a single-key object chain built from output_path, innermost
// segment outward ("a.b" with "X" yields {"a":{"b":"X"}}).
func buildPayload(rendered string, cfg *entities.Config) any {
	if !cfg.Templates.Wrapped() {
		return rendered
	}
	path := cfg.Templates.OutputPath
	if path == "" {
		path = entities.DefaultOutputPath
	}
	return nestPayload(path, rendered)
}

func nestPayload(path, rendered string) any {
	var value any = rendered
	segments := strings.Split(path, ".")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "" {
			continue
		}
		value = entities.Document{segments[i]: value}
	}
	return value
}

// buildControl reports downstream routing intent alongside every successful
// payload. A blank routing falls back to the default.
func buildControl(cfg *entities.Config) entities.Document {
	routing := cfg.Templates.Routing
	if strings.TrimSpace(routing) == "" {
		routing = entities.DefaultRouting
	}
	return entities.Document{"routing": routing}
}
