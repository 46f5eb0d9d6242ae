package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"electra/contexts/election-core/result-aggregator/application/queries"
	"electra/contexts/election-core/result-aggregator/domain/entities"
	httptransport "electra/contexts/election-core/result-aggregator/transport/http"
)

type Handler struct {
	Tally  queries.TallyUseCase
	Logger *slog.Logger
}

// ResultsHandler serves a live recount. The count table is maintained inside
// the ledger's vote transactions, so a read here never trails the vote set.
func (h Handler) ResultsHandler(ctx context.Context, ballotID string) (httptransport.BallotResultResponse, error) {
	result, err := h.Tally.Tally(ctx, ballotID)
	if err != nil {
		return httptransport.BallotResultResponse{}, err
	}
	return resultResponse(result), nil
}

// RefreshHandler forces a recount and cache rewrite.
func (h Handler) RefreshHandler(ctx context.Context, ballotID string) (httptransport.BallotResultResponse, error) {
	result, err := h.Tally.Refresh(ctx, ballotID)
	if err != nil {
		return httptransport.BallotResultResponse{}, err
	}
	return resultResponse(result), nil
}

func resultResponse(result entities.BallotResult) httptransport.BallotResultResponse {
	resp := httptransport.BallotResultResponse{
		BallotID:   result.BallotID,
		BallotName: result.BallotName,
		Status:     result.Status,
		Total:      result.Total,
		Options:    make([]httptransport.OptionResultResponse, 0, len(result.Options)),
		ComputedAt: result.ComputedAt.UTC().Format(time.RFC3339),
	}
	for _, option := range result.Options {
		resp.Options = append(resp.Options, httptransport.OptionResultResponse{
			OptionID: option.OptionID,
			Name:     option.Name,
			Votes:    option.Votes,
			Percent:  option.Percent,
		})
	}
	return resp
}
