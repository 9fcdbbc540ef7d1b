package models

import "testing"

func TestValidFormationLevel(t *testing.T) {
	tests := []struct {
		level FormationLevel
		want  bool
	}{
		{LevelBeginner, true},
		{LevelIntermediate, true},
		{LevelAdvanced, true},
		{FormationLevel("EXPERT"), false},
		{FormationLevel("beginner"), false},
		{FormationLevel(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := ValidFormationLevel(tt.level); got != tt.want {
				t.Errorf("ValidFormationLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestValidCourseType(t *testing.T) {
	tests := []struct {
		courseType CourseType
		want       bool
	}{
		{CourseLesson, true},
		{CourseVideo, true},
		{CourseDocument, true},
		{CourseType("WORKSHOP"), false},
		{CourseType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.courseType), func(t *testing.T) {
			if got := ValidCourseType(tt.courseType); got != tt.want {
				t.Errorf("ValidCourseType(%q) = %v, want %v", tt.courseType, got, tt.want)
			}
		})
	}
}

func TestValidLegalDocumentType(t *testing.T) {
	tests := []struct {
		docType LegalDocumentType
		want    bool
	}{
		{DocInternalRegulation, true},
		{DocStudyRegulation, true},
		{DocTrainingTerms, true},
		{DocAccessibilityPolicy, true},
		{DocAccessibilityProcedures, true},
		{LegalDocumentType("PRIVACY_POLICY"), false},
		{LegalDocumentType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			if got := ValidLegalDocumentType(tt.docType); got != tt.want {
				t.Errorf("ValidLegalDocumentType(%q) = %v, want %v", tt.docType, got, tt.want)
			}
		})
	}
}
