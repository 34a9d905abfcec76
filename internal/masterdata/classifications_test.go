package masterdata

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

func newClassificationFixture(t *testing.T) (*ItemLineStore, *ItemStore, *refint.Validator) {
	t.Helper()
	dir := t.TempDir()
	lines := NewItemLineStore(dir)
	items := NewItemStore(dir)

	registry := store.NewRegistry()
	require.NoError(t, registry.Add(lines))
	require.NoError(t, registry.Add(items))

	index := refint.NewIndex()
	index.Declare(entity.KindItemLines,
		refint.Check{Kind: entity.KindItems, Scan: refint.ScanField(items, func(it entity.Item, id int64) bool {
			return it.ItemLineID == id
		})},
	)
	validator := refint.NewValidator(registry, index)
	validator.Register(refint.TargetFor(lines))
	validator.Register(refint.TargetFor(items))
	return lines, items, validator
}

func TestClassificationNameValidation(t *testing.T) {
	lines, items, validator := newClassificationFixture(t)
	res := NewItemLinesResource(lines, items, validator)

	_, err := res.Create(context.Background(), strings.NewReader(`{"name":"Home Appliances"}`))
	require.NoError(t, err)

	_, err = res.Create(context.Background(), strings.NewReader(`{"name":"Aisle 9"}`))
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = res.Create(context.Background(), strings.NewReader(`{"name":""}`))
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestClassificationDeleteBlockedByItems(t *testing.T) {
	lines, items, validator := newClassificationFixture(t)
	res := NewItemLinesResource(lines, items, validator)

	line := lines.Create(entity.ItemLine{Name: "Tools"})
	items.Create(entity.Item{Code: "ITM-1", ItemLineID: line.ID})

	_, err := res.Delete(context.Background(), line.ID, false)
	require.ErrorIs(t, err, shared.ErrConflict)

	report, err := res.Delete(context.Background(), line.ID, true)
	require.NoError(t, err)
	rep, ok := report.(refint.Report)
	require.True(t, ok)
	require.False(t, rep.Deletable)
}

func TestItemsRelation(t *testing.T) {
	lines, items, validator := newClassificationFixture(t)
	res := NewItemLinesResource(lines, items, validator)

	line := lines.Create(entity.ItemLine{Name: "Tools"})
	want := items.Create(entity.Item{Code: "ITM-1", ItemLineID: line.ID})
	items.Create(entity.Item{Code: "ITM-2", ItemLineID: line.ID + 1})

	got, err := res.Relation(context.Background(), line.ID, "items")
	require.NoError(t, err)
	listed, ok := got.([]entity.Item)
	require.True(t, ok)
	require.Len(t, listed, 1)
	require.Equal(t, want.ID, listed[0].ID)
}
