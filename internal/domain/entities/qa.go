package entities

// QAMode selects which interactive flow a question list serves.
type QAMode string

const (
	QAModeDefault QAMode = "default"
	QAModeSetup   QAMode = "setup"
	QAModeUpdate  QAMode = "update"
	QAModeRemove  QAMode = "remove"
)

// QuestionKind is the input widget a question expects.
type QuestionKind string

const QuestionText QuestionKind = "text"

// Question is a single setup prompt. Label is a translation key; the host
// localizes it for its own user.
type Question struct {
	ID       string       `json:"id"`
	LabelKey string       `json:"label_key"`
	Kind     QuestionKind `json:"kind"`
	Required bool         `json:"required"`
	Default  string       `json:"default,omitempty"`
}

// QASpec is the question list for one mode.
type QASpec struct {
	Mode      QAMode     `json:"mode"`
	TitleKey  string     `json:"title_key"`
	Questions []Question `json:"questions,omitempty"`
}

// I18nKeys lists every translation key the spec references.
func (s QASpec) I18nKeys() []string {
	keys := []string{s.TitleKey}
	for _, q := range s.Questions {
		keys = append(keys, q.LabelKey)
	}
	return keys
}
