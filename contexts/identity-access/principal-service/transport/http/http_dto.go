package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterVoterRequest struct {
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Address     string `json:"address,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Password    string `json:"password"`
}

type RegisterPartyRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Description  string `json:"description,omitempty"`
	LeaderName   string `json:"leader_name,omitempty"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

type RegisterStaffRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Position       string `json:"position,omitempty"`
	PollingStation string `json:"polling_station,omitempty"`
	Password       string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   string            `json:"expires_at"`
	Principal   PrincipalResponse `json:"principal"`
}

type PrincipalResponse struct {
	PrincipalID string `json:"principal_id"`
	Email       string `json:"email"`
	Login       string `json:"login"`
	Role        string `json:"role"`
	LinkedKind  string `json:"linked_kind,omitempty"`
	LinkedID    string `json:"linked_id,omitempty"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
}

type VoterProfileResponse struct {
	ProfileID   string `json:"profile_id"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
}

type PartyProfileResponse struct {
	ProfileID    string `json:"profile_id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Description  string `json:"description,omitempty"`
	LeaderName   string `json:"leader_name,omitempty"`
	Email        string `json:"email"`
}

type StaffProfileResponse struct {
	ProfileID      string `json:"profile_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Position       string `json:"position,omitempty"`
	PollingStation string `json:"polling_station,omitempty"`
}

type ProfileResponse struct {
	Kind  string                `json:"kind"`
	Voter *VoterProfileResponse `json:"voter,omitempty"`
	Party *PartyProfileResponse `json:"party,omitempty"`
	Staff *StaffProfileResponse `json:"staff,omitempty"`
}
