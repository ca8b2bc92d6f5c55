package services

import (
	"fmt"
	"strings"

	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

// QuestionSynthesizer turns topics into exam questions. It round-robins
// over topics and requested types independently, so callers get a stable
// interleaving for identical input.
type QuestionSynthesizer struct {
	distractors *DistractorSynthesizer
}

func NewQuestionSynthesizer(distractors *DistractorSynthesizer) *QuestionSynthesizer {
	return &QuestionSynthesizer{distractors: distractors}
}

// Synthesize emits count questions drawn from the given topics. Every
// emitted question has exactly 4 options with the correct answer at
// index 0. A fill-in-the-blank slot whose topic has no usable sentence is
// substituted with an MCQ instead of a malformed entry.
func (qs *QuestionSynthesizer) Synthesize(topics []models.Topic, types []models.QuestionType, count int) []models.Question {
	if len(topics) == 0 || count < 1 {
		return nil
	}
	if len(types) == 0 {
		types = []models.QuestionType{models.QuestionTypeMCQ, models.QuestionTypeBlank}
	}

	questions := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		topic := topics[i%len(topics)]
		qtype := types[i%len(types)]
		// pass counts how many times the round-robin has revisited this
		// topic; each pass advances to the topic's next keyword/sentence
		// so repeated visits still yield distinct questions.
		pass := i / len(topics)

		var q models.Question
		if qtype == models.QuestionTypeBlank && len(topic.Sentences) > 0 {
			q = qs.blankQuestion(topic, pass)
		} else {
			q = qs.mcqQuestion(topic, pass)
		}
		questions = append(questions, q)
	}
	return questions
}

// mcqQuestion builds a multiple-choice question around one of the topic's
// ranked keywords, starting from the primary keyword on the first pass.
func (qs *QuestionSynthesizer) mcqQuestion(topic models.Topic, pass int) models.Question {
	correct := topic.Title
	if len(topic.Keywords) > 0 {
		correct = topic.Keywords[pass%len(topic.Keywords)]
	}

	subject := topic.Title
	if subject == "" {
		subject = correct
	}

	options := append([]string{correct}, qs.distractors.Synthesize(topic, correct, 3)...)

	return models.Question{
		Text:          fmt.Sprintf("Which concept is most closely related to %s?", subject),
		Type:          models.QuestionTypeMCQ,
		Options:       options,
		CorrectAnswer: 0,
	}
}

// blankQuestion removes a term from one of the topic's representative
// sentences, starting with the first. Options keep the removed term at
// index 0, so substituting it back into the marker reproduces the source
// sentence (modulo case).
func (qs *QuestionSynthesizer) blankQuestion(topic models.Topic, pass int) models.Question {
	sentence := topic.Sentences[pass%len(topic.Sentences)]
	keyword := topic.PrimaryKeyword()

	var blanked, term string
	if idx := strings.Index(strings.ToLower(sentence), strings.ToLower(keyword)); keyword != "" && idx >= 0 {
		term = keyword
		blanked = sentence[:idx] + models.BlankMarker + sentence[idx+len(keyword):]
	} else {
		term = longestWord(sentence)
		blanked = strings.Replace(sentence, term, models.BlankMarker, 1)
	}

	options := append([]string{term}, qs.distractors.Synthesize(topic, term, 3)...)

	return models.Question{
		Text:          blanked,
		Type:          models.QuestionTypeBlank,
		Options:       options,
		CorrectAnswer: 0,
	}
}

// longestWord picks the longest word over 5 characters, first occurrence
// winning ties; short sentences fall back to their middle word.
func longestWord(sentence string) string {
	words := strings.Fields(sentence)
	best := ""
	for _, w := range words {
		if len(w) > 5 && len(w) > len(best) {
			best = w
		}
	}
	if best == "" && len(words) > 0 {
		best = words[len(words)/2]
	}
	return best
}
