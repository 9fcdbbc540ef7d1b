package models

import "time"

// SessionStatus is the lifecycle status of a training session
type SessionStatus string

const (
	SessionPlanned   SessionStatus = "PLANNED"
	SessionOpen      SessionStatus = "OPEN"
	SessionFull      SessionStatus = "FULL"
	SessionClosed    SessionStatus = "CLOSED"
	SessionCancelled SessionStatus = "CANCELLED"
)

// sessionTransitions lists the allowed status moves. CANCELLED and CLOSED
// are terminal.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionPlanned: {SessionOpen, SessionCancelled},
	SessionOpen:    {SessionFull, SessionClosed, SessionCancelled},
	SessionFull:    {SessionOpen, SessionClosed, SessionCancelled},
}

// CanTransitionTo reports whether a session may move from s to target.
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Session is a scheduled occurrence of a formation
type Session struct {
	ID              int64         `json:"id"`
	FormationID     int64         `json:"formationId"`
	StartDate       time.Time     `json:"startDate"`
	EndDate         time.Time     `json:"endDate"`
	Location        string        `json:"location"`
	Capacity        int           `json:"capacity"`
	PriceCents      *int64        `json:"priceCents,omitempty"`
	Status          SessionStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	Formation       *Formation    `json:"formation,omitempty"`
	RegisteredCount int           `json:"registeredCount"`
}

// RegistrationStatus is the lifecycle status of a session registration
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "PENDING"
	RegistrationConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationAttended  RegistrationStatus = "ATTENDED"
	RegistrationCancelled RegistrationStatus = "CANCELLED"
)

var registrationTransitions = map[RegistrationStatus][]RegistrationStatus{
	RegistrationPending:   {RegistrationConfirmed, RegistrationCancelled},
	RegistrationConfirmed: {RegistrationAttended, RegistrationCancelled},
}

// CanTransitionTo reports whether a registration may move from s to target.
func (s RegistrationStatus) CanTransitionTo(target RegistrationStatus) bool {
	for _, allowed := range registrationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// SessionRegistration is a (possibly anonymous) enrolment into a session
type SessionRegistration struct {
	ID        int64              `json:"id"`
	SessionID int64              `json:"sessionId"`
	UserID    *int64             `json:"userId,omitempty"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Email     string             `json:"email"`
	Company   string             `json:"company,omitempty"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Session   *Session           `json:"session,omitempty"`
}

// FullName returns the registrant display name.
func (r *SessionRegistration) FullName() string {
	return r.FirstName + " " + r.LastName
}
