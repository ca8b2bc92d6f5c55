package services

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

// TopicExtractor derives a bounded list of topics from document text using
// term-frequency statistics. It never fails; unusable input yields an empty
// list and the caller decides how to react.
type TopicExtractor struct {
	headingRegex  *regexp.Regexp
	sentenceRegex *regexp.Regexp
	tokenRegex    *regexp.Regexp
	stopWords     map[string]struct{}
	maxKeywords   int
	maxSentences  int
	contextLength int
}

// Stop-words carried over from the original keyword extraction. The list is
// closed but extendable through AddStopWords.
var defaultStopWords = []string{
	"this", "that", "then", "than", "with", "from",
	"there", "these", "those", "have", "been",
}

func NewTopicExtractor() *TopicExtractor {
	stop := make(map[string]struct{}, len(defaultStopWords))
	for _, w := range defaultStopWords {
		stop[w] = struct{}{}
	}

	return &TopicExtractor{
		headingRegex:  regexp.MustCompile(`(?mi)^\s*Section\s+\d+:\s*(.+)$`),
		sentenceRegex: regexp.MustCompile(`[.!?]+`),
		tokenRegex:    regexp.MustCompile(`[a-z]{4,}`),
		stopWords:     stop,
		maxKeywords:   5,
		maxSentences:  3,
		contextLength: 200,
	}
}

// AddStopWords extends the stop-word list with additional lowercase terms.
func (te *TopicExtractor) AddStopWords(words ...string) {
	for _, w := range words {
		te.stopWords[strings.ToLower(w)] = struct{}{}
	}
}

// section is a contiguous span of the document under one heading.
type section struct {
	title   string
	content string
}

// ExtractTopics partitions text into sections, scores candidate terms and
// emits up to maxTopics topics. Output order is deterministic for identical
// input: score ties are broken by first occurrence.
func (te *TopicExtractor) ExtractTopics(text string, maxTopics int) []models.Topic {
	if maxTopics < 1 || strings.TrimSpace(text) == "" {
		return nil
	}

	sections := te.splitSections(text)

	limit := maxTopics
	if len(sections) < limit {
		limit = len(sections)
	}

	// Document frequency over all sections for the TF-IDF weighting, not
	// just the ones that make the topic cut.
	df := make(map[string]int)
	sectionTokens := make([]map[string]int, len(sections))
	sectionOrder := make([][]string, len(sections))
	for i, sec := range sections {
		counts, order := te.tokenize(sec.content)
		sectionTokens[i] = counts
		sectionOrder[i] = order
		for term := range counts {
			df[term]++
		}
	}

	topics := make([]models.Topic, 0, limit)
	for i := 0; i < limit; i++ {
		sec := sections[i]
		keywords := te.scoreTerms(sectionTokens[i], sectionOrder[i], df, len(sections))
		if len(keywords) == 0 {
			// Nothing scorable in this section; skip it rather than emit
			// a placeholder topic.
			continue
		}
		if len(keywords) > te.maxKeywords {
			keywords = keywords[:te.maxKeywords]
		}

		title := sec.title
		if title == "" {
			title = keywords[0]
		}

		topics = append(topics, models.Topic{
			ID:        fmt.Sprintf("topic-%d", len(topics)),
			Title:     title,
			Context:   te.contextExcerpt(sec.content),
			Keywords:  keywords,
			Sentences: te.pickSentences(sec.content, keywords),
		})
	}

	return topics
}

// splitSections partitions the text on "Section N:" headings. Without any
// heading the whole text is one untitled section.
func (te *TopicExtractor) splitSections(text string) []section {
	matches := te.headingRegex.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []section{{content: strings.TrimSpace(text)}}
	}

	sections := make([]section, 0, len(matches))
	for i, m := range matches {
		title := strings.TrimSpace(text[m[2]:m[3]])
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections = append(sections, section{
			title:   title,
			content: strings.TrimSpace(text[start:end]),
		})
	}
	return sections
}

// tokenize returns term counts plus the terms in first-occurrence order so
// score ties stay stable.
func (te *TopicExtractor) tokenize(content string) (map[string]int, []string) {
	words := te.tokenRegex.FindAllString(strings.ToLower(content), -1)
	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if _, stop := te.stopWords[w]; stop {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}
	return counts, order
}

// scoreTerms ranks a section's terms by term frequency weighted with the
// term's rarity across sections. The weight stays positive so higher
// in-section frequency always ranks higher on equal rarity.
func (te *TopicExtractor) scoreTerms(counts map[string]int, order []string, df map[string]int, totalSections int) []string {
	if len(order) == 0 {
		return nil
	}

	scores := make(map[string]float64, len(order))
	for _, term := range order {
		idf := math.Log(1 + float64(totalSections)/float64(1+df[term]))
		scores[term] = float64(counts[term]) * idf
	}

	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})
	return ranked
}

// contextExcerpt takes the leading slice of a section as display context.
func (te *TopicExtractor) contextExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= te.contextLength {
		return content
	}
	return string(runes[:te.contextLength]) + "..."
}

// splitSentences breaks content at sentence-terminal punctuation and keeps
// candidates longer than 10 characters after trimming. The fragment after
// the final terminator is not a sentence; text with no terminators at all
// yields none, which downstream turns into multiple-choice questions
// instead of blanking an unbounded span.
func (te *TopicExtractor) splitSentences(content string) []string {
	parts := te.sentenceRegex.Split(content, -1)
	if len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > 10 {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// pickSentences prefers sentences mentioning a top keyword; when none do,
// the section's first few sentences stand in.
func (te *TopicExtractor) pickSentences(content string, keywords []string) []string {
	candidates := te.splitSentences(content)
	if len(candidates) == 0 {
		return nil
	}

	var matched []string
	for _, s := range candidates {
		lower := strings.ToLower(s)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, s)
				break
			}
		}
		if len(matched) == te.maxSentences {
			break
		}
	}

	if len(matched) == 0 {
		matched = candidates
	}
	if len(matched) > te.maxSentences {
		matched = matched[:te.maxSentences]
	}
	return matched
}
