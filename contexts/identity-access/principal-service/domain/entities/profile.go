package entities

import "time"

// Profiles are exclusively owned by their principal via the tagged link on
// Principal; the back-reference is the principal row, never a shared pointer.

type VoterProfile struct {
	ID          string
	FullName    string
	DateOfBirth time.Time
	Address     string
	Email       string
	Phone       string
	CreatedAt   time.Time
}

type PartyProfile struct {
	ID           string
	Name         string
	Abbreviation string
	Description  string
	LeaderName   string
	Email        string
	CreatedAt    time.Time
}

type StaffProfile struct {
	ID             string
	FullName       string
	Email          string
	Position       string
	PollingStation string
	CreatedAt      time.Time
}
