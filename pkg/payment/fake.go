package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Fake approves every charge unless Decline is set. Charges are kept so
// callers can inspect them.
type Fake struct {
	Decline bool
	Err     error

	mu      sync.Mutex
	charges []ChargeRequest
}

func (f *Fake) Charge(ctx context.Context, req ChargeRequest) (Charge, error) {
	if err := ctx.Err(); err != nil {
		return Charge{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.charges = append(f.charges, req)

	if f.Err != nil {
		return Charge{}, f.Err
	}
	if f.Decline {
		return Charge{}, ErrDeclined
	}
	return Charge{ID: "ch_fake_" + uuid.NewString()[:8], Paid: true}, nil
}

// Charges returns every request seen so far.
func (f *Fake) Charges() []ChargeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ChargeRequest(nil), f.charges...)
}
