package portfolio

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/models"
)

type memStore struct {
	items []models.PortfolioItem
}

func (m *memStore) List(_ context.Context) ([]models.PortfolioItem, error) {
	out := make([]models.PortfolioItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memStore) Get(_ context.Context, id string) (*models.PortfolioItem, error) {
	for _, item := range m.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, fmt.Errorf("holding not found: %s", id)
}

func (m *memStore) Put(_ context.Context, item *models.PortfolioItem) error {
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = *item
			return nil
		}
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestService() (*Service, *memStore) {
	store := &memStore{}
	return NewService(store, common.NewSilentLogger()), store
}

func TestAdd(t *testing.T) {
	svc, store := newTestService()

	item, err := svc.Add(context.Background(), models.PortfolioItem{
		Symbol:   " bhp ",
		Quantity: 10,
		BuyPrice: 42.50,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "BHP", item.Symbol, "symbol is trimmed and uppercased")
	assert.Equal(t, "BHP", item.Name, "name defaults to symbol")
	assert.Equal(t, 42.50, item.CurrentPrice, "current price defaults to buy price")
	assert.Len(t, store.items, 1)
}

func TestAdd_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		item models.PortfolioItem
	}{
		{"blank symbol", models.PortfolioItem{Symbol: "  ", Quantity: 1, BuyPrice: 1}},
		{"zero quantity", models.PortfolioItem{Symbol: "BHP", Quantity: 0, BuyPrice: 1}},
		{"negative quantity", models.PortfolioItem{Symbol: "BHP", Quantity: -5, BuyPrice: 1}},
		{"negative buy price", models.PortfolioItem{Symbol: "BHP", Quantity: 1, BuyPrice: -1}},
		{"negative current price", models.PortfolioItem{Symbol: "BHP", Quantity: 1, BuyPrice: 1, CurrentPrice: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tt.item)
			assert.Error(t, err)
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService()

	added, err := svc.Add(context.Background(), models.PortfolioItem{
		Symbol: "WOW", Quantity: 5, BuyPrice: 30,
	})
	require.NoError(t, err)

	added.Quantity = 8
	added.CurrentPrice = 33
	updated, err := svc.Update(context.Background(), *added)
	require.NoError(t, err)
	assert.Equal(t, 8.0, updated.Quantity)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 33.0, items[0].CurrentPrice)
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), models.PortfolioItem{
		ID: "missing", Symbol: "BHP", Quantity: 1, BuyPrice: 1,
	})
	assert.Error(t, err)

	_, err = svc.Update(context.Background(), models.PortfolioItem{
		Symbol: "BHP", Quantity: 1, BuyPrice: 1,
	})
	assert.Error(t, err, "update without an id is rejected")
}

func TestDelete(t *testing.T) {
	svc, store := newTestService()

	added, err := svc.Add(context.Background(), models.PortfolioItem{
		Symbol: "CSL", Quantity: 2, BuyPrice: 250,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), added.ID))
	assert.Empty(t, store.items)
}

func TestSummary(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), models.PortfolioItem{
		Symbol: "AAA", Quantity: 10, BuyPrice: 100, CurrentPrice: 110,
	})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), models.PortfolioItem{
		Symbol: "BBB", Quantity: 5, BuyPrice: 50, CurrentPrice: 40,
	})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 1300.0, summary.TotalValue, 1e-9)
	assert.InDelta(t, 1250.0, summary.TotalCost, 1e-9)
	assert.InDelta(t, 50.0, summary.GainLoss, 1e-9)
	assert.InDelta(t, 4.0, summary.GainLossPct, 1e-9)
	assert.Equal(t, 2, summary.HoldingCount)
}

func TestSummary_Empty(t *testing.T) {
	svc, _ := newTestService()

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalValue)
	assert.Zero(t, summary.GainLossPct, "percentage is zero when cost basis is zero")
}

func TestSimulate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), models.PortfolioItem{
		Symbol: "AAA", Quantity: 10, BuyPrice: 100, CurrentPrice: 100,
	})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), models.PortfolioItem{
		Symbol: "BBB", Quantity: 5, BuyPrice: 80, CurrentPrice: 80,
	})
	require.NoError(t, err)

	// r = -0.15 + u * 0.40 for each draw
	draws := []float64{0.0, 1.0}
	svc.randFloat = func() float64 {
		u := draws[0]
		draws = draws[1:]
		return u
	}

	items, err := svc.Simulate(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.InDelta(t, 85.0, items[0].CurrentPrice, 1e-9, "u=0 gives the -15%% floor")
	assert.InDelta(t, 100.0, items[1].CurrentPrice, 1e-9, "u=1 gives the +25%% cap")

	// The new prices are persisted, not just returned.
	persisted, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 85.0, persisted[0].CurrentPrice, 1e-9)
	assert.InDelta(t, 100.0, persisted[1].CurrentPrice, 1e-9)
}

func TestSimulate_BoundsWithRealRandomness(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), models.PortfolioItem{
		Symbol: "AAA", Quantity: 1, BuyPrice: 200,
	})
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		items, err := svc.Simulate(context.Background())
		require.NoError(t, err)
		price := items[0].CurrentPrice
		assert.GreaterOrEqual(t, price, 200*0.85)
		assert.LessOrEqual(t, price, 200*1.25)
	}
}
