package order

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore emulates the postgres adapter: versioned orders, append-only
// payments, and an inventory map keyed by product|location that only applies
// deltas to rows that exist.
type mockStore struct {
	orders    map[string]*Order
	inventory map[string]float64
	users     map[string]string // auth code -> user id

	commits      int
	conflictOnce bool // first commit loses the race, like a concurrent writer
	conflictAll  bool
}

func newMockStore() *mockStore {
	return &mockStore{
		orders:    make(map[string]*Order),
		inventory: make(map[string]float64),
		users:     make(map[string]string),
	}
}

func invKey(productID, locationID string) string {
	return productID + "|" + locationID
}

func (m *mockStore) GetByID(_ context.Context, id string) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (m *mockStore) List(_ context.Context, _ ListInput) ([]Order, error) {
	out := make([]Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockStore) GetStatus(_ context.Context, id string) (string, error) {
	o, ok := m.orders[id]
	if !ok {
		return "", ErrNotFound
	}
	return o.Status, nil
}

func (m *mockStore) FindActorByAuthCode(_ context.Context, authCode string) (string, error) {
	id, ok := m.users[authCode]
	if !ok {
		return "", ErrActorNotResolved
	}
	return id, nil
}

func (m *mockStore) Create(_ context.Context, in CreateInput, actorUserID string, d Decision) (*Order, error) {
	now := time.Now()
	o := &Order{
		ID:              uuid.NewString(),
		LocationID:      in.LocationID,
		CustomerID:      in.CustomerID,
		Status:          in.Status,
		OrderDate:       now,
		CreatedDate:     now,
		CreatedByUserID: actorUserID,
		Total:           in.Total,
		SubTotal:        in.SubTotal,
		OriginalOrderID: in.OriginalOrderID,
		RowVersion:      1,
	}
	for _, it := range in.Details {
		o.Details = append(o.Details, Detail{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Amount:    it.Amount,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	m.applyDecision(o, d, in.PaymentTypeID, actorUserID)
	m.orders[o.ID] = o
	clone := *o
	return &clone, nil
}

func (m *mockStore) CommitStatusChange(_ context.Context, in StatusCommit) (*Order, error) {
	o, ok := m.orders[in.OrderID]
	if !ok {
		return nil, ErrNotFound
	}
	if m.conflictAll || m.conflictOnce {
		m.conflictOnce = false
		o.RowVersion++ // the winning writer bumped the version
		return nil, ErrConflict
	}
	if o.RowVersion != in.FromVersion {
		return nil, ErrConflict
	}

	m.commits++
	o.Status = in.NewStatus
	o.RowVersion++
	m.applyDecision(o, in.Decision, in.PaymentTypeID, in.ActorUserID)
	clone := *o
	return &clone, nil
}

func (m *mockStore) UpdateInfo(_ context.Context, id string, in UpdateInfoInput) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Notes = in.Notes
	o.PoNumber = in.PoNumber
	clone := *o
	return &clone, nil
}

func (m *mockStore) applyDecision(o *Order, d Decision, paymentTypeID int, actorUserID string) {
	if d.RecordPayment {
		o.Payments = append(o.Payments, OrderPayment{
			ID:              uuid.NewString(),
			OrderID:         o.ID,
			CreatedByUserID: actorUserID,
			PaymentAmount:   o.Total,
			PaymentTypeID:   paymentTypeID,
		})
	}
	if d.Inventory == EffectNone {
		return
	}
	sign := -1.0
	if d.Inventory == EffectIncrement {
		sign = 1.0
	}
	for _, line := range o.Details {
		key := invKey(line.ProductID, o.LocationID)
		if _, tracked := m.inventory[key]; !tracked {
			continue // untracked SKU at this location
		}
		m.inventory[key] += sign * atof(line.Amount)
	}
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// --- Helpers -------------------------------------------------------------

func seedOrder(m *mockStore, status, productID, locationID, amount, total string) *Order {
	o := &Order{
		ID:         uuid.NewString(),
		LocationID: locationID,
		CustomerID: uuid.NewString(),
		Status:     status,
		Total:      total,
		SubTotal:   total,
		RowVersion: 1,
	}
	o.Details = []Detail{{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		ProductID: productID,
		Amount:    amount,
		UnitPrice: "10.00",
		LineTotal: total,
	}}
	m.orders[o.ID] = o
	return o
}

// --- Tests ---------------------------------------------------------------

func TestApplyStatusChange_DraftToPaid(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 100
	o := seedOrder(store, StatusDraft, productID, locationID, "3", "30.00")

	out, err := uc.ApplyStatusChange(context.Background(), o.ID, UpdateStatusInput{Status: StatusPaid, PaymentTypeID: 1}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, out.Status)
	assert.Equal(t, 97.0, store.inventory[invKey(productID, locationID)])
	require.Len(t, out.Payments, 1)
	assert.Equal(t, "30.00", out.Payments[0].PaymentAmount)
	assert.Equal(t, 1, out.Payments[0].PaymentTypeID)
	assert.Equal(t, "user-1", out.Payments[0].CreatedByUserID)
}

func TestApplyStatusChange_OnHoldToDraft(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 97
	o := seedOrder(store, StatusOnHold, productID, locationID, "3", "30.00")

	out, err := uc.ApplyStatusChange(context.Background(), o.ID, UpdateStatusInput{Status: StatusDraft}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, out.Status)
	assert.Equal(t, 100.0, store.inventory[invKey(productID, locationID)])
	assert.Empty(t, out.Payments, "restocking never records a payment")
}

func TestApplyStatusChange_PaidToDraftLeavesInventory(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 50
	o := seedOrder(store, StatusPaid, productID, locationID, "5", "50.00")

	_, err := uc.ApplyStatusChange(context.Background(), o.ID, UpdateStatusInput{Status: StatusDraft}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 50.0, store.inventory[invKey(productID, locationID)])
}

func TestApplyStatusChange_ReplayIsNoOp(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 97
	o := seedOrder(store, StatusPaid, productID, locationID, "3", "30.00")

	out, err := uc.ApplyStatusChange(context.Background(), o.ID, UpdateStatusInput{Status: StatusPaid, PaymentTypeID: 1}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, out.Status)
	assert.Equal(t, 0, store.commits, "replay must not reach the store commit")
	assert.Equal(t, 97.0, store.inventory[invKey(productID, locationID)])
	assert.Empty(t, out.Payments)
}

func TestApplyStatusChange_RetriesOnceOnConflict(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 100
	o := seedOrder(store, StatusDraft, productID, locationID, "3", "30.00")
	store.conflictOnce = true

	out, err := uc.ApplyStatusChange(context.Background(), o.ID, UpdateStatusInput{Status: StatusPaid, PaymentTypeID: 1}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, out.Status)
	assert.Equal(t, 1, store.commits, "conflict retried against fresh state exactly once")
	assert.Equal(t, 97.0, store.inventory[invKey(productID, locationID)])
	require.Len(t, out.Payments, 1)
}

func TestApplyStatusChange_SecondConflictSurfaces(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	o := seedOrder(store, StatusDraft, uuid.NewString(), uuid.NewString(), "1", "10.00")
	store.conflictAll = true

	_, err := uc.ApplyStatusChange(context.Background(), o.ID, UpdateStatusInput{Status: StatusPaid}, "user-1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 0, store.commits)
}

func TestApplyStatusChange_InvalidStatus(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	o := seedOrder(store, StatusDraft, uuid.NewString(), uuid.NewString(), "1", "10.00")

	_, err := uc.ApplyStatusChange(context.Background(), o.ID, UpdateStatusInput{Status: "shipped"}, "user-1")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = uc.ApplyStatusChange(context.Background(), o.ID, UpdateStatusInput{Status: ""}, "user-1")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplyStatusChange_NotFound(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	_, err := uc.ApplyStatusChange(context.Background(), uuid.NewString(), UpdateStatusInput{Status: StatusPaid}, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_PaidOrderDeductsAndRecordsPayment(t *testing.T) {
	store := newMockStore()
	store.users["code-7"] = "user-7"
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 100

	out, err := uc.Create(context.Background(), CreateInput{
		AuthCode:      "code-7",
		LocationID:    locationID,
		CustomerID:    uuid.NewString(),
		Status:        StatusPaid,
		Total:         "30.00",
		SubTotal:      "30.00",
		PaymentTypeID: 2,
		Details:       []CreateDetail{{ProductID: productID, Amount: "3", UnitPrice: "10.00", LineTotal: "30.00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "user-7", out.CreatedByUserID)
	assert.Equal(t, 97.0, store.inventory[invKey(productID, locationID)])
	require.Len(t, out.Payments, 1)
	assert.Equal(t, "30.00", out.Payments[0].PaymentAmount)
}

func TestCreate_ReturnOfPaidOriginal(t *testing.T) {
	store := newMockStore()
	store.users["code-7"] = "user-7"
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 97
	original := seedOrder(store, StatusPaid, productID, locationID, "3", "30.00")

	out, err := uc.Create(context.Background(), CreateInput{
		AuthCode:        "code-7",
		LocationID:      locationID,
		CustomerID:      uuid.NewString(),
		Status:          StatusReturn,
		Total:           "20.00",
		SubTotal:        "20.00",
		OriginalOrderID: &original.ID,
		PaymentTypeID:   1,
		Details:         []CreateDetail{{ProductID: productID, Amount: "2", UnitPrice: "10.00", LineTotal: "20.00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 99.0, store.inventory[invKey(productID, locationID)])
	require.Len(t, out.Payments, 1)
	assert.Equal(t, "20.00", out.Payments[0].PaymentAmount, "payment is the return's own total")
}

func TestCreate_ReturnOfUnpaidOriginal(t *testing.T) {
	store := newMockStore()
	store.users["code-7"] = "user-7"
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 40
	original := seedOrder(store, StatusOnHold, productID, locationID, "2", "20.00")

	out, err := uc.Create(context.Background(), CreateInput{
		AuthCode:        "code-7",
		LocationID:      locationID,
		CustomerID:      uuid.NewString(),
		Status:          StatusReturn,
		Total:           "20.00",
		SubTotal:        "20.00",
		OriginalOrderID: &original.ID,
		Details:         []CreateDetail{{ProductID: productID, Amount: "2", UnitPrice: "10.00", LineTotal: "20.00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 40.0, store.inventory[invKey(productID, locationID)])
	assert.Empty(t, out.Payments)
}

func TestCreate_ReturnWithMissingOriginal(t *testing.T) {
	store := newMockStore()
	store.users["code-7"] = "user-7"
	uc := New(store)

	missing := uuid.NewString()
	_, err := uc.Create(context.Background(), CreateInput{
		AuthCode:        "code-7",
		LocationID:      uuid.NewString(),
		CustomerID:      uuid.NewString(),
		Status:          StatusReturn,
		Total:           "20.00",
		SubTotal:        "20.00",
		OriginalOrderID: &missing,
		Details:         []CreateDetail{{ProductID: uuid.NewString(), Amount: "2", UnitPrice: "10.00", LineTotal: "20.00"}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_ActorNotResolved(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	_, err := uc.Create(context.Background(), CreateInput{
		AuthCode:   "bogus",
		LocationID: uuid.NewString(),
		CustomerID: uuid.NewString(),
		Status:     StatusDraft,
		Total:      "10.00",
		SubTotal:   "10.00",
		Details:    []CreateDetail{{ProductID: uuid.NewString(), Amount: "1", UnitPrice: "10.00", LineTotal: "10.00"}},
	})
	assert.ErrorIs(t, err, ErrActorNotResolved)
}

func TestCreate_UntrackedProductSkipped(t *testing.T) {
	store := newMockStore()
	store.users["code-7"] = "user-7"
	uc := New(store)

	// no inventory row for this product anywhere
	productID, locationID := uuid.NewString(), uuid.NewString()

	_, err := uc.Create(context.Background(), CreateInput{
		AuthCode:      "code-7",
		LocationID:    locationID,
		CustomerID:    uuid.NewString(),
		Status:        StatusPaid,
		Total:         "10.00",
		SubTotal:      "10.00",
		PaymentTypeID: 1,
		Details:       []CreateDetail{{ProductID: productID, Amount: "1", UnitPrice: "10.00", LineTotal: "10.00"}},
	})
	require.NoError(t, err)
	_, tracked := store.inventory[invKey(productID, locationID)]
	assert.False(t, tracked, "the ledger never creates inventory rows")
}

func TestCreate_DefaultsToDraftWithNoEffects(t *testing.T) {
	store := newMockStore()
	store.users["code-7"] = "user-7"
	uc := New(store)

	productID, locationID := uuid.NewString(), uuid.NewString()
	store.inventory[invKey(productID, locationID)] = 10

	out, err := uc.Create(context.Background(), CreateInput{
		AuthCode:   "code-7",
		LocationID: locationID,
		CustomerID: uuid.NewString(),
		Total:      "10.00",
		SubTotal:   "10.00",
		Details:    []CreateDetail{{ProductID: productID, Amount: "1", UnitPrice: "10.00", LineTotal: "10.00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, out.Status)
	assert.Equal(t, 10.0, store.inventory[invKey(productID, locationID)])
	assert.Empty(t, out.Payments)
}

func TestCreate_InvalidInput(t *testing.T) {
	store := newMockStore()
	uc := New(store)

	_, err := uc.Create(context.Background(), CreateInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(context.Background(), CreateInput{
		LocationID: uuid.NewString(),
		CustomerID: uuid.NewString(),
		Status:     "shipped",
		Details:    []CreateDetail{{ProductID: uuid.NewString(), Amount: "1"}},
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
