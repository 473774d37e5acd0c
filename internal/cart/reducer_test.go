package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func product(id string, price int64, stock *int) Product {
	return Product{
		ID:        id,
		Name:      "producto " + id,
		UnitPrice: decimal.NewFromInt(price),
		Stock:     stock,
	}
}

func TestAddNewLineSnapshotsProduct(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, Product{
		ID:        "A",
		Name:      "Arepa rellena",
		UnitPrice: decimal.NewFromInt(5000),
		ImageRef:  "/uploads/arepa.png",
		Stock:     intPtr(3),
	}, 99)

	if len(c.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Lines))
	}
	line := c.Lines[0]
	if line.Quantity != 1 || line.StockLimit != 3 {
		t.Fatalf("unexpected line %+v", line)
	}
	if line.Name != "Arepa rellena" || line.ImageRef != "/uploads/arepa.png" {
		t.Fatalf("display fields not snapshotted: %+v", line)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected unit price %s", line.UnitPrice)
	}
}

func TestAddDefaultsStockLimitWhenUnreported(t *testing.T) {
	t.Parallel()

	if c := Add(Cart{}, product("A", 1000, nil), 99); c.Lines[0].StockLimit != 99 {
		t.Fatalf("nil stock should default, got %d", c.Lines[0].StockLimit)
	}
	if c := Add(Cart{}, product("A", 1000, intPtr(0)), 99); c.Lines[0].StockLimit != 99 {
		t.Fatalf("zero stock should default, got %d", c.Lines[0].StockLimit)
	}
}

func TestAddIsIdempotentBeyondStockLimit(t *testing.T) {
	t.Parallel()

	c := Cart{}
	limit := 2
	for i := 0; i < limit+5; i++ {
		c = Add(c, product("A", 1000, intPtr(limit)), 99)
	}
	if got := c.Lines[0].Quantity; got != limit {
		t.Fatalf("expected quantity capped at %d, got %d", limit, got)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	c := Cart{}
	c = Add(c, product("A", 1000, nil), 99)
	c = Add(c, product("B", 2000, nil), 99)
	c = Add(c, product("A", 1000, nil), 99)
	c = Add(c, product("C", 3000, nil), 99)

	ids := []string{"A", "B", "C"}
	if len(c.Lines) != len(ids) {
		t.Fatalf("expected %d lines, got %d", len(ids), len(c.Lines))
	}
	for i, id := range ids {
		if c.Lines[i].ProductID != id {
			t.Fatalf("line %d: expected %s, got %s", i, id, c.Lines[i].ProductID)
		}
	}
}

func TestChangeQuantityStaysWithinBounds(t *testing.T) {
	t.Parallel()

	base := Add(Cart{}, product("A", 1000, intPtr(5)), 99)

	for _, delta := range []int{-100, -1, 0, 1, 4, 100} {
		got, _ := ChangeQuantity(base, "A", delta)
		q := got.Lines[0].Quantity
		if q < 1 || q > 5 {
			t.Fatalf("delta %d produced out-of-bounds quantity %d", delta, q)
		}
	}
}

func TestChangeQuantityLimitNotice(t *testing.T) {
	t.Parallel()

	// Cart [{A, qty 2, limit 2}]: +1 keeps quantity 2 and surfaces the limit.
	c := Add(Cart{}, product("A", 5000, intPtr(2)), 99)
	c, _ = ChangeQuantity(c, "A", 1)

	next, notice := ChangeQuantity(c, "A", 1)
	if next.Lines[0].Quantity != 2 {
		t.Fatalf("quantity must stay at limit, got %d", next.Lines[0].Quantity)
	}
	if notice == nil || notice.StockLimit != 2 {
		t.Fatalf("expected LimitReached{2}, got %+v", notice)
	}
}

func TestChangeQuantityNeverDropsBelowOne(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, product("A", 1000, intPtr(5)), 99)
	next, notice := ChangeQuantity(c, "A", -10)
	if next.Lines[0].Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", next.Lines[0].Quantity)
	}
	if notice != nil {
		t.Fatalf("lower clamp must not raise a limit notice, got %+v", notice)
	}
}

func TestMutationsOnMissingProductAreNoOps(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, product("A", 1000, nil), 99)

	next, notice := ChangeQuantity(c, "ghost", 3)
	if notice != nil || len(next.Lines) != 1 || next.Lines[0].Quantity != 1 {
		t.Fatalf("change on missing product must be a no-op: %+v", next)
	}

	next = Remove(c, "ghost")
	if len(next.Lines) != 1 {
		t.Fatalf("remove on missing product must be a no-op: %+v", next)
	}
}

func TestClearThenMutateStaysEmpty(t *testing.T) {
	t.Parallel()

	c := Clear()
	c, notice := ChangeQuantity(c, "A", 2)
	if notice != nil || !c.Empty() {
		t.Fatalf("empty cart must stay empty after change, got %+v", c)
	}
	c = Remove(c, "A")
	if !c.Empty() {
		t.Fatalf("empty cart must stay empty after remove, got %+v", c)
	}
}

func TestRemoveCanEmptyTheCart(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, product("A", 1000, nil), 99)
	c = Remove(c, "A")
	if !c.Empty() {
		t.Fatalf("expected empty cart, got %+v", c)
	}
}

func TestTotalIsRecomputed(t *testing.T) {
	t.Parallel()

	c := Cart{}
	c = Add(c, product("A", 5000, intPtr(10)), 99)
	c, _ = ChangeQuantity(c, "A", 1)
	c = Add(c, product("B", 3500, nil), 99)

	want := decimal.NewFromInt(5000*2 + 3500)
	if !c.Total().Equal(want) {
		t.Fatalf("expected total %s, got %s", want, c.Total())
	}
	if Clear().Total().Sign() != 0 {
		t.Fatal("empty cart total must be zero")
	}
}

func TestReducerDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	base := Add(Cart{}, product("A", 1000, intPtr(5)), 99)
	snapshot := base.Lines[0]

	if next, _ := ChangeQuantity(base, "A", 3); next.Lines[0].Quantity != 4 {
		t.Fatal("expected new cart to carry the change")
	}
	if base.Lines[0] != snapshot {
		t.Fatalf("input cart was mutated: %+v", base.Lines[0])
	}
}
