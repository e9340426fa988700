package order

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrNotFound         = errors.New("order not found")
	ErrConflict         = errors.New("order was modified concurrently")
	ErrActorNotResolved = errors.New("auth code does not match a known user")
)

// StatusCommit carries everything the store needs to apply one status change
// atomically: the status write guarded by the version read at load time, the
// inventory deltas, and the payment record when the decision calls for one.
type StatusCommit struct {
	OrderID       string
	FromVersion   int
	NewStatus     string
	Decision      Decision
	PaymentTypeID int
	ActorUserID   string
}

type Store interface {
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, in ListInput) ([]Order, error)

	// GetStatus reads the persisted status of an order without its
	// details/payments. Used for the return-of-paid-original check.
	GetStatus(ctx context.Context, id string) (string, error)

	// FindActorByAuthCode maps creation credentials to a user id.
	FindActorByAuthCode(ctx context.Context, authCode string) (string, error)

	// Create persists the order, its lines, the decision's inventory deltas
	// and payment record in one transaction.
	Create(ctx context.Context, in CreateInput, actorUserID string, d Decision) (*Order, error)

	// CommitStatusChange applies a StatusCommit in one transaction. Returns
	// ErrConflict when the version guard misses on an order that still
	// exists, ErrNotFound when it is gone.
	CommitStatusChange(ctx context.Context, in StatusCommit) (*Order, error)

	UpdateInfo(ctx context.Context, id string, in UpdateInfoInput) (*Order, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

// ApplyStatusChange runs one read-decide-write cycle for a status change and
// retries the whole cycle exactly once when the commit loses an optimistic
// concurrency race. A second conflict is surfaced to the caller.
func (u *Usecase) ApplyStatusChange(ctx context.Context, id string, in UpdateStatusInput, actorUserID string) (*Order, error) {
	if id == "" || actorUserID == "" {
		return nil, ErrInvalidInput
	}
	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	const maxAttempts = 2
	for attempt := 1; ; attempt++ {
		cur, err := u.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		// Replay of an already-applied transition: no effects.
		if cur.Status == in.Status {
			return cur, nil
		}

		out, err := u.store.CommitStatusChange(ctx, StatusCommit{
			OrderID:       id,
			FromVersion:   cur.RowVersion,
			NewStatus:     in.Status,
			Decision:      DecideTransition(cur.Status, in.Status),
			PaymentTypeID: in.PaymentTypeID,
			ActorUserID:   actorUserID,
		})
		if errors.Is(err, ErrConflict) && attempt < maxAttempts {
			continue
		}
		return out, err
	}
}

// Create inserts a new order. The actor is resolved from the request's auth
// code, and an order created directly as paid (or as a return of a paid
// original) gets its payment record and inventory deltas in the same commit.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if in.LocationID == "" || in.CustomerID == "" || len(in.Details) == 0 {
		return nil, ErrInvalidInput
	}
	for _, d := range in.Details {
		if d.ProductID == "" || d.Amount == "" {
			return nil, ErrInvalidInput
		}
	}
	if in.Status == "" {
		in.Status = StatusDraft
	}
	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	actorID, err := u.store.FindActorByAuthCode(ctx, in.AuthCode)
	if err != nil {
		return nil, err
	}

	returnOfPaid := false
	if in.Status == StatusReturn && in.OriginalOrderID != nil {
		origStatus, err := u.store.GetStatus(ctx, *in.OriginalOrderID)
		if err != nil {
			return nil, err
		}
		returnOfPaid = origStatus == StatusPaid
	}

	return u.store.Create(ctx, in, actorID, DecideCreation(in.Status, returnOfPaid))
}

func (u *Usecase) GetByID(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return u.store.GetByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]Order, error) {
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
	return u.store.List(ctx, in)
}

func (u *Usecase) UpdateInfo(ctx context.Context, id string, in UpdateInfoInput) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return u.store.UpdateInfo(ctx, id, in)
}
