package models

import "testing"

func TestSessionStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from SessionStatus
		to   SessionStatus
		want bool
	}{
		{SessionPlanned, SessionOpen, true},
		{SessionPlanned, SessionCancelled, true},
		{SessionPlanned, SessionFull, false},
		{SessionPlanned, SessionClosed, false},
		{SessionOpen, SessionFull, true},
		{SessionOpen, SessionClosed, true},
		{SessionOpen, SessionCancelled, true},
		{SessionOpen, SessionPlanned, false},
		{SessionFull, SessionOpen, true},
		{SessionFull, SessionClosed, true},
		{SessionFull, SessionCancelled, true},
		{SessionClosed, SessionOpen, false},
		{SessionClosed, SessionCancelled, false},
		{SessionCancelled, SessionPlanned, false},
		{SessionCancelled, SessionOpen, false},
		{SessionOpen, SessionOpen, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestRegistrationStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from RegistrationStatus
		to   RegistrationStatus
		want bool
	}{
		{RegistrationPending, RegistrationConfirmed, true},
		{RegistrationPending, RegistrationCancelled, true},
		{RegistrationPending, RegistrationAttended, false},
		{RegistrationConfirmed, RegistrationAttended, true},
		{RegistrationConfirmed, RegistrationCancelled, true},
		{RegistrationConfirmed, RegistrationPending, false},
		{RegistrationAttended, RegistrationCancelled, false},
		{RegistrationAttended, RegistrationConfirmed, false},
		{RegistrationCancelled, RegistrationPending, false},
		{RegistrationCancelled, RegistrationConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSessionRegistrationFullName(t *testing.T) {
	r := &SessionRegistration{FirstName: "Marie", LastName: "Dupont"}
	if got, want := r.FullName(), "Marie Dupont"; got != want {
		t.Errorf("FullName() = %q, want %q", got, want)
	}
}
