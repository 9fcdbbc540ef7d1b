package models

// UserRole defines the account role type
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStudent UserRole = "STUDENT"
)

// FormationLevel is the difficulty level of a formation
type FormationLevel string

const (
	LevelBeginner     FormationLevel = "BEGINNER"
	LevelIntermediate FormationLevel = "INTERMEDIATE"
	LevelAdvanced     FormationLevel = "ADVANCED"
)

// ValidFormationLevel reports whether l is one of the known levels.
func ValidFormationLevel(l FormationLevel) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// CourseType is the pedagogical format of a course
type CourseType string

const (
	CourseLesson   CourseType = "LESSON"
	CourseVideo    CourseType = "VIDEO"
	CourseDocument CourseType = "DOCUMENT"
)

// ValidCourseType reports whether t is one of the known course types.
func ValidCourseType(t CourseType) bool {
	switch t {
	case CourseLesson, CourseVideo, CourseDocument:
		return true
	}
	return false
}
