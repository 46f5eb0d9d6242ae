package postgres

import (
	"context"

	"github.com/google/uuid"

	"electra/contexts/election-core/vote-ledger/ports"
)

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.IDGenerator = UUIDGenerator{}
