package services

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

// DistractorSynthesizer produces plausible wrong answers for a topic when
// real alternatives are scarce. The random source is injectable so tests
// can pin the output; a nil source means fully deterministic selection at
// fixed relative positions through the context token stream.
type DistractorSynthesizer struct {
	rng       *rand.Rand
	wordRegex *regexp.Regexp
}

// Relative positions through the deduplicated context tokens, chosen to
// maximize lexical spread between the picked terms.
var contextPositions = []float64{0.3, 0.6, 0.9}

func NewDistractorSynthesizer(rng *rand.Rand) *DistractorSynthesizer {
	return &DistractorSynthesizer{
		rng:       rng,
		wordRegex: regexp.MustCompile(`[^\w\s]`),
	}
}

// Synthesize returns count distractors, each distinct from excludeTerm and
// from one another. Preference order: the topic's other ranked keywords,
// then spread-out context terms, then synthetic placeholders. The result
// always reaches count entries.
func (ds *DistractorSynthesizer) Synthesize(topic models.Topic, excludeTerm string, count int) []string {
	if count < 1 {
		return nil
	}

	distractors := make([]string, 0, count)
	seen := map[string]struct{}{strings.ToLower(excludeTerm): {}}

	add := func(candidate string) bool {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			return false
		}
		key := strings.ToLower(candidate)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		distractors = append(distractors, candidate)
		return len(distractors) == count
	}

	// (a) other ranked keywords in score order
	for _, kw := range topic.Keywords {
		if add(kw) {
			return distractors
		}
	}

	// (b) frequent terms from the context, sampled at spread-out positions
	words := ds.contextTerms(topic.Context)
	if len(words) > 0 {
		for _, pos := range contextPositions {
			idx := int(pos * float64(len(words)))
			if ds.rng != nil {
				idx = ds.rng.Intn(len(words))
			}
			if idx >= len(words) {
				idx = len(words) - 1
			}
			if add(words[idx]) {
				return distractors
			}
		}
		// Sweep the rest in order if the fixed positions collided.
		for _, w := range words {
			if add(w) {
				return distractors
			}
		}
	}

	// (c) synthetic placeholders guarantee the option list fills up
	for n := 1; len(distractors) < count; n++ {
		add(fmt.Sprintf("Option %d", n))
	}
	return distractors
}

// contextTerms extracts deduplicated candidate terms from a context
// excerpt, preserving first-occurrence order.
func (ds *DistractorSynthesizer) contextTerms(context string) []string {
	var terms []string
	seen := make(map[string]struct{})
	for _, raw := range strings.Fields(context) {
		w := ds.wordRegex.ReplaceAllString(raw, "")
		if len(w) <= 3 {
			continue
		}
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, w)
	}
	return terms
}
