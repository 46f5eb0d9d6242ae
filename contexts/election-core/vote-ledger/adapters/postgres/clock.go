package postgres

import (
	"time"

	"electra/contexts/election-core/vote-ledger/ports"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

var _ ports.Clock = SystemClock{}
