package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/shared"
	"github.com/cargohub/cargohub/internal/store"
)

func newResourceFixture(t *testing.T) (*Store, *refint.Validator) {
	t.Helper()
	st := NewStore(t.TempDir())
	registry := store.NewRegistry()
	require.NoError(t, registry.Add(st))
	validator := refint.NewValidator(registry, refint.NewIndex())
	validator.Register(refint.TargetFor(st))
	return st, validator
}

func TestCreateRecomputesDerivedCounters(t *testing.T) {
	st, validator := newResourceFixture(t)
	res := NewResource(st, validator)

	created, err := res.Create(context.Background(), strings.NewReader(
		`{"item_id":1,"total_on_hand":100,"total_ordered":40,"total_allocated":25,"total_expected":999,"total_available":-5}`))
	require.NoError(t, err)

	inv, ok := created.(entity.Inventory)
	require.True(t, ok)
	require.Equal(t, int64(140), inv.TotalExpected)
	require.Equal(t, int64(75), inv.TotalAvailable)
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	st, validator := newResourceFixture(t)
	res := NewResource(st, validator)

	_, err := res.Create(context.Background(), strings.NewReader(
		`{"item_id":1,"total_on_hand":-3}`))
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateRecomputesDerivedCounters(t *testing.T) {
	st, validator := newResourceFixture(t)
	res := NewResource(st, validator)

	created := st.Create(entity.Inventory{ItemID: 1, TotalOnHand: 10, TotalExpected: 10, TotalAvailable: 10})

	updated, err := res.Update(context.Background(), created.ID, strings.NewReader(
		`{"total_ordered":5,"total_allocated":2}`))
	require.NoError(t, err)

	inv, ok := updated.(entity.Inventory)
	require.True(t, ok)
	require.Equal(t, int64(15), inv.TotalExpected)
	require.Equal(t, int64(8), inv.TotalAvailable)
}
