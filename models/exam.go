package models

import "time"

// Exam groups a set of generated questions for delivery to students.
// Persistence of exams lives outside the generation core; the service keeps
// them in memory for the session only.
type Exam struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DurationMin int        `json:"durationMinutes"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
}
