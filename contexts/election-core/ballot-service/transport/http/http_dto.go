package http

type CreateBallotRequest struct {
	Name    string          `json:"name"`
	Kind    string          `json:"kind,omitempty"`
	Start   string          `json:"start"` // RFC 3339
	End     string          `json:"end"`   // RFC 3339
	Options []OptionRequest `json:"options"`
}

type UpdateBallotRequest struct {
	Name  string `json:"name"`
	Kind  string `json:"kind,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type OptionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type BallotResponse struct {
	BallotID  string           `json:"ballot_id"`
	Name      string           `json:"name"`
	Kind      string           `json:"kind,omitempty"`
	Start     string           `json:"start"`
	End       string           `json:"end"`
	Status    string           `json:"status"`
	Options   []OptionResponse `json:"options,omitempty"`
	UpdatedAt string           `json:"updated_at"`
}

type OptionResponse struct {
	OptionID    string `json:"option_id"`
	BallotID    string `json:"ballot_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}

type BallotListResponse struct {
	Ballots []BallotResponse `json:"ballots"`
}
