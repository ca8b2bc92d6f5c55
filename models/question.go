package models

// QuestionType identifies how a question is answered.
type QuestionType string

const (
	QuestionTypeMCQ   QuestionType = "mcq"
	QuestionTypeBlank QuestionType = "fill-in-the-blank"
)

// BlankMarker is the placeholder inserted where a term was removed from a
// fill-in-the-blank sentence.
const BlankMarker = "__________"

// Topic is a cluster of keywords, context and representative sentences
// derived from one section of source material.
type Topic struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Context   string   `json:"context"`
	Keywords  []string `json:"keywords"`
	Sentences []string `json:"sentences,omitempty"`
}

// PrimaryKeyword returns the highest ranked keyword, or "" when the topic
// has none.
func (t Topic) PrimaryKeyword() string {
	if len(t.Keywords) == 0 {
		return ""
	}
	return t.Keywords[0]
}

// Question is a fully formed exam question. Every generated question has
// exactly 4 options and CorrectAnswer indexes into them.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer int          `json:"correctAnswer"`
}

// Valid reports whether the question satisfies the option-list invariant.
func (q Question) Valid() bool {
	return len(q.Options) == 4 && q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}

// GenerationRequest describes one question-generation call.
type GenerationRequest struct {
	Text          string         `json:"text"`
	NumQuestions  int            `json:"numQuestions"`
	QuestionTypes []QuestionType `json:"questionTypes"`
}

// GenerationResult carries the generated questions. Count may be lower than
// requested when the source material yields fewer viable topics.
type GenerationResult struct {
	Questions []Question `json:"questions"`
	Requested int        `json:"requested"`
	Source    string     `json:"source"` // provider name or "local"
}
