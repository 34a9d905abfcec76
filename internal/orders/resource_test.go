package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/shared"
	"github.com/cargohub/cargohub/internal/store"
)

func newOrdersFixture(t *testing.T) (*Store, *Resource) {
	t.Helper()
	st := NewStore(t.TempDir())
	registry := store.NewRegistry()
	require.NoError(t, registry.Add(st))
	validator := refint.NewValidator(registry, refint.NewIndex())
	validator.Register(refint.TargetFor(st))
	return st, NewResource(st, validator)
}

func TestCreateOrderWithTotals(t *testing.T) {
	_, res := newOrdersFixture(t)

	created, err := res.Create(context.Background(), strings.NewReader(
		`{"reference":"ORD00001","order_status":"Pending","total_amount":"6182.77","total_tax":"372.72","items":[{"item_id":1,"amount":4}]}`))
	require.NoError(t, err)

	o, ok := created.(entity.Order)
	require.True(t, ok)
	require.True(t, o.TotalAmount.Equal(decimal.RequireFromString("6182.77")))
	require.True(t, o.TotalTax.Equal(decimal.RequireFromString("372.72")))
	require.Len(t, o.Items, 1)
}

func TestCreateOrderRequiresReference(t *testing.T) {
	_, res := newOrdersFixture(t)

	_, err := res.Create(context.Background(), strings.NewReader(`{"order_status":"Pending"}`))
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestReplaceItems(t *testing.T) {
	st, res := newOrdersFixture(t)
	created := st.Create(entity.Order{
		Reference: "ORD00001",
		Items:     []entity.LineItem{{ItemID: 1, Amount: 2}},
	})

	updated, err := res.ReplaceItems(context.Background(), created.ID, strings.NewReader(
		`[{"item_id":3,"amount":7},{"item_id":4,"amount":1}]`))
	require.NoError(t, err)

	o, ok := updated.(entity.Order)
	require.True(t, ok)
	require.Equal(t, []entity.LineItem{{ItemID: 3, Amount: 7}, {ItemID: 4, Amount: 1}}, o.Items)

	stored, err := st.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
}

func TestReplaceItemsValidation(t *testing.T) {
	st, res := newOrdersFixture(t)
	created := st.Create(entity.Order{Reference: "ORD00001"})

	_, err := res.ReplaceItems(context.Background(), created.ID, strings.NewReader(
		`[{"item_id":3,"amount":0}]`))
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = res.ReplaceItems(context.Background(), 99, strings.NewReader(
		`[{"item_id":3,"amount":1}]`))
	require.ErrorIs(t, err, shared.ErrNotFound)
}
