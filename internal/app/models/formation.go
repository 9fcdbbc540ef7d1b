package models

import "time"

// Formation is the top level of the training catalog. Its duration is the
// sum of its module durations and is maintained by the duration cascade.
type Formation struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Description     string         `json:"description"`
	Objectives      string         `json:"objectives"`
	Prerequisites   string         `json:"prerequisites"`
	Category        string         `json:"category"`
	Level           FormationLevel `json:"level"`
	PriceCents      int64          `json:"priceCents"`
	DurationMinutes int            `json:"durationMinutes"`
	IsPublished     bool           `json:"isPublished"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`

	Modules []*Module `json:"modules,omitempty"`
}

// Module groups chapters inside a formation
type Module struct {
	ID              int64     `json:"id"`
	FormationID     int64     `json:"formationId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Position        int       `json:"position"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Chapters []*Chapter `json:"chapters,omitempty"`
}

// Chapter groups courses inside a module
type Chapter struct {
	ID              int64     `json:"id"`
	ModuleID        int64     `json:"moduleId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Position        int       `json:"position"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Courses []*Course `json:"courses,omitempty"`
}

// Course is a teaching unit inside a chapter. Its duration is its own
// lecture time plus the durations of its exercises and QCMs.
type Course struct {
	ID              int64      `json:"id"`
	ChapterID       int64      `json:"chapterId"`
	Title           string     `json:"title"`
	Type            CourseType `json:"type"`
	Content         string     `json:"content"`
	Position        int        `json:"position"`
	LectureMinutes  int        `json:"lectureMinutes"`
	DurationMinutes int        `json:"durationMinutes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Exercises []*Exercise `json:"exercises,omitempty"`
	QCMs      []*QCM      `json:"qcms,omitempty"`
}

// Exercise is a practical assignment attached to a course
type Exercise struct {
	ID               int64     `json:"id"`
	CourseID         int64     `json:"courseId"`
	Title            string    `json:"title"`
	Instructions     string    `json:"instructions"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
	MaxPoints        int       `json:"maxPoints"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// QCM is a multiple-choice questionnaire attached to a course
type QCM struct {
	ID               int64     `json:"id"`
	CourseID         int64     `json:"courseId"`
	Title            string    `json:"title"`
	QuestionCount    int       `json:"questionCount"`
	TimeLimitMinutes int       `json:"timeLimitMinutes"`
	PassScore        int       `json:"passScore"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
