package postgres

import (
	"context"

	"github.com/google/uuid"

	"electra/contexts/civic-feedback/complaint-service/ports"
)

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.IDGenerator = UUIDGenerator{}
