package services

import (
	"reflect"
	"strings"
	"testing"
)

const sectionedText = `Section 1: Photosynthesis
Photosynthesis converts light energy into chemical energy inside leaves. Chlorophyll molecules absorb light during photosynthesis. Plants release oxygen while photosynthesis runs.

Section 2: Respiration
Cellular respiration releases stored energy from glucose molecules. Mitochondria perform respiration continuously inside cells. Respiration consumes oxygen during the process.`

func TestExtractTopicsSections(t *testing.T) {
	te := NewTopicExtractor()

	topics := te.ExtractTopics(sectionedText, 5)
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}

	if topics[0].Title != "Photosynthesis" {
		t.Errorf("topic 0 title = %q, want %q", topics[0].Title, "Photosynthesis")
	}
	if topics[1].Title != "Respiration" {
		t.Errorf("topic 1 title = %q, want %q", topics[1].Title, "Respiration")
	}

	if got := topics[0].Keywords[0]; got != "photosynthesis" {
		t.Errorf("topic 0 top keyword = %q, want %q", got, "photosynthesis")
	}
	if got := topics[1].Keywords[0]; got != "respiration" {
		t.Errorf("topic 1 top keyword = %q, want %q", got, "respiration")
	}

	for _, topic := range topics {
		if topic.ID == "" {
			t.Errorf("topic %q has empty ID", topic.Title)
		}
		if len(topic.Keywords) == 0 || len(topic.Keywords) > 5 {
			t.Errorf("topic %q has %d keywords, want 1..5", topic.Title, len(topic.Keywords))
		}
		if len(topic.Sentences) == 0 || len(topic.Sentences) > 3 {
			t.Errorf("topic %q has %d sentences, want 1..3", topic.Title, len(topic.Sentences))
		}
		if topic.Context == "" {
			t.Errorf("topic %q has empty context", topic.Title)
		}
	}
}

func TestExtractTopicsDeterministic(t *testing.T) {
	te := NewTopicExtractor()

	first := te.ExtractTopics(sectionedText, 5)
	second := te.ExtractTopics(sectionedText, 5)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated extraction produced different topics for identical input")
	}
}

func TestExtractTopicsNoHeadings(t *testing.T) {
	te := NewTopicExtractor()
	text := "Gravity pulls every object toward the center of the earth. Gravity also keeps planets in orbit around stars."

	topics := te.ExtractTopics(text, 5)
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic for unheaded text, got %d", len(topics))
	}
	if topics[0].Title != topics[0].Keywords[0] {
		t.Errorf("untitled topic title = %q, want top keyword %q", topics[0].Title, topics[0].Keywords[0])
	}
}

func TestExtractTopicsMaxTopicsLimit(t *testing.T) {
	te := NewTopicExtractor()

	topics := te.ExtractTopics(sectionedText, 1)
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic with maxTopics=1, got %d", len(topics))
	}
	if topics[0].Title != "Photosynthesis" {
		t.Errorf("kept topic = %q, want first section", topics[0].Title)
	}
}

func TestExtractTopicsSkipsUnscorableSection(t *testing.T) {
	te := NewTopicExtractor()
	text := `Section 1: Numbers
1 2 3 4 5 6 7 8 9 10.

Section 2: Biology
Enzymes catalyze biochemical reactions inside living organisms constantly.`

	topics := te.ExtractTopics(text, 5)
	if len(topics) != 1 {
		t.Fatalf("expected unscorable section to be skipped, got %d topics", len(topics))
	}
	if topics[0].Title != "Biology" {
		t.Errorf("surviving topic = %q, want %q", topics[0].Title, "Biology")
	}
	if topics[0].ID != "topic-0" {
		t.Errorf("surviving topic ID = %q, want %q", topics[0].ID, "topic-0")
	}
}

func TestExtractTopicsWithoutSentenceTerminators(t *testing.T) {
	te := NewTopicExtractor()
	text := "Neural networks learn hierarchical feature representations from large unlabeled datasets across many application domains"

	topics := te.ExtractTopics(text, 5)
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	if len(topics[0].Sentences) != 0 {
		t.Errorf("unpunctuated text yielded sentences %v, want none", topics[0].Sentences)
	}
	if len(topics[0].Keywords) == 0 {
		t.Error("unpunctuated text should still yield keywords")
	}
}

func TestExtractTopicsDropsTrailingFragment(t *testing.T) {
	te := NewTopicExtractor()
	text := "Gravity pulls every object toward the center of the earth. Unfinished thought about planetary motion"

	topics := te.ExtractTopics(text, 5)
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	for _, s := range topics[0].Sentences {
		if strings.Contains(s, "Unfinished") {
			t.Errorf("trailing fragment %q was kept as a sentence", s)
		}
	}
}

func TestExtractTopicsStopWords(t *testing.T) {
	te := NewTopicExtractor()
	text := "This that then than with from there these those have been beautiful."

	topics := te.ExtractTopics(text, 5)
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	if !reflect.DeepEqual(topics[0].Keywords, []string{"beautiful"}) {
		t.Errorf("keywords = %v, want only the non-stop-word term", topics[0].Keywords)
	}
}

func TestExtractTopicsAddStopWords(t *testing.T) {
	te := NewTopicExtractor()
	te.AddStopWords("beautiful")

	topics := te.ExtractTopics("This that beautiful beautiful beautiful.", 5)
	if len(topics) != 0 {
		t.Fatalf("expected no topics after suppressing the only keyword, got %d", len(topics))
	}
}

func TestExtractTopicsEmptyInput(t *testing.T) {
	te := NewTopicExtractor()

	cases := []struct {
		name      string
		text      string
		maxTopics int
	}{
		{"empty text", "", 5},
		{"whitespace text", "   \n\t  ", 5},
		{"zero max", sectionedText, 0},
		{"negative max", sectionedText, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if topics := te.ExtractTopics(tc.text, tc.maxTopics); len(topics) != 0 {
				t.Errorf("expected no topics, got %d", len(topics))
			}
		})
	}
}

func TestContextExcerptTruncation(t *testing.T) {
	te := NewTopicExtractor()
	text := strings.Repeat("Thermodynamics governs energy transfer between physical systems. ", 10)

	topics := te.ExtractTopics(text, 1)
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	if !strings.HasSuffix(topics[0].Context, "...") {
		t.Error("long context should be truncated with an ellipsis")
	}
	if n := len([]rune(topics[0].Context)); n > 203 {
		t.Errorf("context length = %d runes, want at most 203", n)
	}
}
