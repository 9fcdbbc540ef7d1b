package models

import (
	"testing"
	"time"
)

func TestNeedsAnalysisRequestIsExpiredAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"never sent", nil, false},
		{"deadline in the future", &future, false},
		{"deadline passed", &past, true},
		{"deadline exactly now", &now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &NeedsAnalysisRequest{ExpiresAt: tt.expiresAt}
			if got := r.IsExpiredAt(now); got != tt.want {
				t.Errorf("IsExpiredAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsAnalysisRequestAcceptsSubmission(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		status    AnalysisStatus
		expiresAt *time.Time
		want      bool
	}{
		{"sent and within deadline", AnalysisSent, &future, true},
		{"sent but expired", AnalysisSent, &past, false},
		{"pending", AnalysisPending, &future, false},
		{"completed", AnalysisCompleted, &future, false},
		{"cancelled", AnalysisCancelled, &future, false},
		{"expired status", AnalysisExpired, &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &NeedsAnalysisRequest{Status: tt.status, ExpiresAt: tt.expiresAt}
			if got := r.AcceptsSubmission(now); got != tt.want {
				t.Errorf("AcceptsSubmission() = %v, want %v", got, tt.want)
			}
		})
	}
}
