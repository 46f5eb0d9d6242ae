package http

type OptionResultResponse struct {
	OptionID string  `json:"option_id"`
	Name     string  `json:"name"`
	Votes    int64   `json:"votes"`
	Percent  float64 `json:"percent"`
}

type BallotResultResponse struct {
	BallotID   string                 `json:"ballot_id"`
	BallotName string                 `json:"ballot_name"`
	Status     string                 `json:"status"`
	Total      int64                  `json:"total"`
	Options    []OptionResultResponse `json:"options"`
	ComputedAt string                 `json:"computed_at"`
}
