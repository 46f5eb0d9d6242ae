package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"electra/contexts/election-core/ballot-service/application/commands"
	"electra/contexts/election-core/ballot-service/application/queries"
	"electra/contexts/election-core/ballot-service/domain/entities"
	httptransport "electra/contexts/election-core/ballot-service/transport/http"
)

type Handler struct {
	Ballots commands.BallotUseCase
	Lister  queries.ListUseCase
	Logger  *slog.Logger
}

func (h Handler) CreateBallotHandler(ctx context.Context, req httptransport.CreateBallotRequest) (httptransport.BallotResponse, error) {
	options := make([]commands.OptionInput, 0, len(req.Options))
	for _, option := range req.Options {
		options = append(options, commands.OptionInput{Name: option.Name, Description: option.Description})
	}
	ballot, created, err := h.Ballots.Create(ctx, commands.CreateBallotCommand{
		Name:    req.Name,
		Kind:    req.Kind,
		Start:   req.Start,
		End:     req.End,
		Options: options,
	})
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return ballotResponse(ballot, created), nil
}

func (h Handler) UpdateBallotHandler(ctx context.Context, ballotID string, req httptransport.UpdateBallotRequest) (httptransport.BallotResponse, error) {
	ballot, err := h.Ballots.Update(ctx, commands.UpdateBallotCommand{
		BallotID: ballotID,
		Name:     req.Name,
		Kind:     req.Kind,
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return ballotResponse(ballot, nil), nil
}

func (h Handler) AddOptionHandler(ctx context.Context, ballotID string, req httptransport.OptionRequest) (httptransport.OptionResponse, error) {
	option, err := h.Ballots.AddOption(ctx, ballotID, commands.OptionInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.OptionResponse{}, err
	}
	return optionResponse(option), nil
}

func (h Handler) OpenBallotHandler(ctx context.Context, ballotID string) (httptransport.BallotResponse, error) {
	ballot, err := h.Ballots.Open(ctx, ballotID)
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return ballotResponse(ballot, nil), nil
}

func (h Handler) CloseBallotHandler(ctx context.Context, ballotID string) (httptransport.BallotResponse, error) {
	ballot, err := h.Ballots.Close(ctx, ballotID)
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return ballotResponse(ballot, nil), nil
}

func (h Handler) GetBallotHandler(ctx context.Context, ballotID string) (httptransport.BallotResponse, error) {
	ballot, options, err := h.Lister.GetBallotWithOptions(ctx, ballotID)
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return ballotResponse(ballot, options), nil
}

func (h Handler) ListBallotsHandler(ctx context.Context) (httptransport.BallotListResponse, error) {
	ballots, err := h.Lister.ListBallots(ctx)
	if err != nil {
		return httptransport.BallotListResponse{}, err
	}
	resp := httptransport.BallotListResponse{Ballots: make([]httptransport.BallotResponse, 0, len(ballots))}
	for _, ballot := range ballots {
		resp.Ballots = append(resp.Ballots, ballotResponse(ballot, nil))
	}
	return resp, nil
}

func ballotResponse(ballot entities.Ballot, options []entities.Option) httptransport.BallotResponse {
	resp := httptransport.BallotResponse{
		BallotID:  ballot.ID,
		Name:      ballot.Name,
		Kind:      ballot.Kind,
		Start:     ballot.Start.UTC().Format(time.RFC3339),
		End:       ballot.End.UTC().Format(time.RFC3339),
		Status:    string(ballot.Status),
		UpdatedAt: ballot.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for _, option := range options {
		resp.Options = append(resp.Options, optionResponse(option))
	}
	return resp
}

func optionResponse(option entities.Option) httptransport.OptionResponse {
	return httptransport.OptionResponse{
		OptionID:    option.ID,
		BallotID:    option.BallotID,
		Name:        option.Name,
		Description: option.Description,
		Position:    option.Position,
	}
}
