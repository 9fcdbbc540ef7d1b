package dto

// CreateModuleRequest adds a module to a formation
type CreateModuleRequest struct {
	FormationID int64  `json:"formationId" binding:"required,gt=0"`
	Title       string `json:"title" binding:"required,min=2,max=255"`
	Description string `json:"description"`
	Position    int    `json:"position" binding:"gte=0"`
}

// UpdateModuleRequest updates a module
type UpdateModuleRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=255"`
	Description string `json:"description"`
	Position    int    `json:"position" binding:"gte=0"`
}

// CreateChapterRequest adds a chapter to a module
type CreateChapterRequest struct {
	ModuleID    int64  `json:"moduleId" binding:"required,gt=0"`
	Title       string `json:"title" binding:"required,min=2,max=255"`
	Description string `json:"description"`
	Position    int    `json:"position" binding:"gte=0"`
}

// UpdateChapterRequest updates a chapter
type UpdateChapterRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=255"`
	Description string `json:"description"`
	Position    int    `json:"position" binding:"gte=0"`
}

// CreateCourseRequest adds a course to a chapter
type CreateCourseRequest struct {
	ChapterID      int64  `json:"chapterId" binding:"required,gt=0"`
	Title          string `json:"title" binding:"required,min=2,max=255"`
	Type           string `json:"type" binding:"required,oneof=LESSON VIDEO DOCUMENT"`
	Content        string `json:"content"`
	Position       int    `json:"position" binding:"gte=0"`
	LectureMinutes int    `json:"lectureMinutes" binding:"gte=0"`
}

// UpdateCourseRequest updates a course
type UpdateCourseRequest struct {
	Title          string `json:"title" binding:"required,min=2,max=255"`
	Type           string `json:"type" binding:"required,oneof=LESSON VIDEO DOCUMENT"`
	Content        string `json:"content"`
	Position       int    `json:"position" binding:"gte=0"`
	LectureMinutes int    `json:"lectureMinutes" binding:"gte=0"`
}

// CreateExerciseRequest adds an exercise to a course
type CreateExerciseRequest struct {
	CourseID         int64  `json:"courseId" binding:"required,gt=0"`
	Title            string `json:"title" binding:"required,min=2,max=255"`
	Instructions     string `json:"instructions"`
	EstimatedMinutes int    `json:"estimatedMinutes" binding:"gte=0"`
	MaxPoints        int    `json:"maxPoints" binding:"gte=0"`
}

// UpdateExerciseRequest updates an exercise
type UpdateExerciseRequest struct {
	Title            string `json:"title" binding:"required,min=2,max=255"`
	Instructions     string `json:"instructions"`
	EstimatedMinutes int    `json:"estimatedMinutes" binding:"gte=0"`
	MaxPoints        int    `json:"maxPoints" binding:"gte=0"`
}

// CreateQCMRequest adds a questionnaire to a course
type CreateQCMRequest struct {
	CourseID         int64  `json:"courseId" binding:"required,gt=0"`
	Title            string `json:"title" binding:"required,min=2,max=255"`
	QuestionCount    int    `json:"questionCount" binding:"gt=0"`
	TimeLimitMinutes int    `json:"timeLimitMinutes" binding:"gte=0"`
	PassScore        int    `json:"passScore" binding:"gte=0,lte=100"`
}

// UpdateQCMRequest updates a questionnaire
type UpdateQCMRequest struct {
	Title            string `json:"title" binding:"required,min=2,max=255"`
	QuestionCount    int    `json:"questionCount" binding:"gt=0"`
	TimeLimitMinutes int    `json:"timeLimitMinutes" binding:"gte=0"`
	PassScore        int    `json:"passScore" binding:"gte=0,lte=100"`
}
