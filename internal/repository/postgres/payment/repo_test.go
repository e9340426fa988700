package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	orderrepo "github.com/tom-gerken/ecommerce-backend/internal/repository/postgres/order"
	"github.com/tom-gerken/ecommerce-backend/internal/repository/postgres/testutil"
	orderuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/order"
	payuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/payment"
)

func TestPayment_ListByOrder_ReflectsEngineWrites(t *testing.T) {
	db := testutil.MustOpenDB(t)
	defer db.Close()

	ctx := context.Background()

	// --- seed minimal data ---
	_, authCode := testutil.MustInsertUser(t, db, "Tom", "tom@example.com", "0042")
	customerID := testutil.MustInsertCustomer(t, db, "Acme Press", nil)
	locationID := testutil.MustInsertLocation(t, db, "Main Warehouse")
	productID := testutil.MustInsertProduct(t, db, "SKU-PAY", "Glossy Paper A4")
	testutil.MustInsertInventory(t, db, productID, locationID, "50")

	// order paid at creation, so the engine appends one payment record
	oRepo := orderrepo.NewOrderRepo(db)
	oStore := orderrepo.NewOrderStoreAdapter(oRepo, db)
	oUC := orderuc.New(oStore)

	order, err := oUC.Create(ctx, orderuc.CreateInput{
		AuthCode:   authCode,
		LocationID: locationID,
		CustomerID: customerID,
		Status:     orderuc.StatusPaid,
		Total:      "20",
		SubTotal:   "20",
		Details: []orderuc.CreateDetail{
			{ProductID: productID, Amount: "2", UnitPrice: "10", LineTotal: "20"},
		},
	})
	require.NoError(t, err)

	// --- read side under test ---
	pUC := payuc.New(NewPaymentStoreAdapter(NewPaymentRepo(db)))

	items, state, err := pUC.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "20.0000", items[0].PaymentAmount)
	require.Equal(t, order.ID, state.OrderID)
	require.Equal(t, "20.0000", state.PaidAmount)
	require.Equal(t, orderuc.StatusPaid, state.Status)
}

func TestPayment_ListByOrder_OrderMissing(t *testing.T) {
	db := testutil.MustOpenDB(t)
	defer db.Close()

	pUC := payuc.New(NewPaymentStoreAdapter(NewPaymentRepo(db)))

	_, _, err := pUC.ListByOrder(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, payuc.ErrOrderMissing)
}
