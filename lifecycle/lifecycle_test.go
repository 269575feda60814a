package lifecycle_test

import (
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"surprise-bag-api/apperr"
	"surprise-bag-api/lifecycle"
	"surprise-bag-api/models"
	"surprise-bag-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// clock is a controllable time source for window tests.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock { return &clock{t: time.Now()} }

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	db       *gorm.DB
	clock    *clock
	engine   *lifecycle.Engine
	shop     *models.User
	customer *models.User
	item     *models.FoodItem
}

func setup(t *testing.T, stock int) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	clk := newClock()
	shop := testutil.SeedUser(t, db, "deli", models.RoleShop)
	customer := testutil.SeedUser(t, db, "alice", models.RoleCustomer)
	item := testutil.SeedItem(t, db, shop, "Pasta", 10, 4, stock)
	return &fixture{
		db:       db,
		clock:    clk,
		engine:   lifecycle.NewWithClock(db, clk.now),
		shop:     shop,
		customer: customer,
		item:     item,
	}
}

func TestCreateReservesStockAndIssuesCode(t *testing.T) {
	f := setup(t, 2)

	order, err := f.engine.Create(f.customer, f.item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 2, order.Quantity)
	assert.Regexp(t, codePattern, order.PickupCode)
	assert.Equal(t, 0, testutil.ItemQuantity(t, f.db, f.item.ID))
}

func TestCreateInsufficientStock(t *testing.T) {
	f := setup(t, 2)

	_, err := f.engine.Create(f.customer, f.item.ID, 3)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, 2, testutil.ItemQuantity(t, f.db, f.item.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "failed reservation must not leave an order behind")
}

func TestCreateUnknownItem(t *testing.T) {
	f := setup(t, 2)
	_, err := f.engine.Create(f.customer, 999, 1)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCreateRequiresCustomerRole(t *testing.T) {
	f := setup(t, 2)
	_, err := f.engine.Create(f.shop, f.item.ID, 1)
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))
	assert.Equal(t, 2, testutil.ItemQuantity(t, f.db, f.item.ID))
}

func TestCancelWithinWindowRestoresStock(t *testing.T) {
	f := setup(t, 2)
	order, err := f.engine.Create(f.customer, f.item.ID, 2)
	require.NoError(t, err)

	f.clock.advance(4 * time.Minute)
	require.NoError(t, f.engine.Cancel(f.customer, order.ID))
	assert.Equal(t, 2, testutil.ItemQuantity(t, f.db, f.item.ID))

	status, err := f.engine.Status(f.customer, order.PickupCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, status.Status)

	// Cancelled is terminal
	err = f.engine.Cancel(f.customer, order.ID)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, 2, testutil.ItemQuantity(t, f.db, f.item.ID))
}

func TestCancelAfterWindowFails(t *testing.T) {
	f := setup(t, 2)
	order, err := f.engine.Create(f.customer, f.item.ID, 1)
	require.NoError(t, err)

	f.clock.advance(lifecycle.CancelWindow + time.Second)
	err = f.engine.Cancel(f.customer, order.ID)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	status, serr := f.engine.Status(f.customer, order.PickupCode)
	require.NoError(t, serr)
	assert.Equal(t, models.OrderPending, status.Status)
	assert.Equal(t, 1, testutil.ItemQuantity(t, f.db, f.item.ID))
}

func TestCancelRequiresOwnership(t *testing.T) {
	f := setup(t, 2)
	order, err := f.engine.Create(f.customer, f.item.ID, 1)
	require.NoError(t, err)

	stranger := testutil.SeedUser(t, f.db, "bob", models.RoleCustomer)
	err = f.engine.Cancel(stranger, order.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestPayUnderpaymentKeepsOrderPending(t *testing.T) {
	f := setup(t, 2)
	order, err := f.engine.Create(f.customer, f.item.ID, 2)
	require.NoError(t, err)

	_, err = f.engine.Pay(f.customer, order.PickupCode, 7.99)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	var short *lifecycle.InsufficientPaymentError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, 8.0, short.Due)
	assert.Equal(t, 7.99, short.Paid)

	status, serr := f.engine.Status(f.customer, order.PickupCode)
	require.NoError(t, serr)
	assert.Equal(t, models.OrderPending, status.Status)
}

func TestPayTransitionsExactlyOnce(t *testing.T) {
	f := setup(t, 2)
	order, err := f.engine.Create(f.customer, f.item.ID, 2)
	require.NoError(t, err)

	due, err := f.engine.Pay(f.customer, order.PickupCode, 10)
	require.NoError(t, err)
	assert.Equal(t, 8.0, due)

	status, serr := f.engine.Status(f.customer, order.PickupCode)
	require.NoError(t, serr)
	assert.Equal(t, models.OrderPaid, status.Status)

	_, err = f.engine.Pay(f.customer, order.PickupCode, 10)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestConfirmPickupPurgesOrder(t *testing.T) {
	f := setup(t, 2)
	order, err := f.engine.Create(f.customer, f.item.ID, 2)
	require.NoError(t, err)

	_, err = f.engine.Pay(f.customer, order.PickupCode, 8)
	require.NoError(t, err)

	require.NoError(t, f.engine.ConfirmPickup(order.PickupCode))

	_, err = f.engine.Status(f.customer, order.PickupCode)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	err = f.engine.ConfirmPickup(order.PickupCode)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// Pickup is consumption: stock stays spent
	assert.Equal(t, 0, testutil.ItemQuantity(t, f.db, f.item.ID))
}

func TestConfirmPickupRequiresPaidOrder(t *testing.T) {
	f := setup(t, 2)
	order, err := f.engine.Create(f.customer, f.item.ID, 1)
	require.NoError(t, err)

	err = f.engine.ConfirmPickup(order.PickupCode)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestConcurrentCreatesOnLastBag(t *testing.T) {
	f := setup(t, 1)
	bob := testutil.SeedUser(t, f.db, "bob", models.RoleCustomer)

	type result struct{ err error }
	results := make(chan result, 2)
	var wg sync.WaitGroup
	for _, customer := range []*models.User{f.customer, bob} {
		wg.Add(1)
		go func(c *models.User) {
			defer wg.Done()
			_, err := f.engine.Create(c, f.item.ID, 1)
			results <- result{err: err}
		}(customer)
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for r := range results {
		switch apperr.KindOf(r.err) {
		case 0:
			require.NoError(t, r.err)
			ok++
		case apperr.Validation:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", r.err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 0, testutil.ItemQuantity(t, f.db, f.item.ID))
}

func TestListForCustomer(t *testing.T) {
	f := setup(t, 5)
	first, err := f.engine.Create(f.customer, f.item.ID, 1)
	require.NoError(t, err)
	_, err = f.engine.Create(f.customer, f.item.ID, 2)
	require.NoError(t, err)

	require.NoError(t, f.engine.Cancel(f.customer, first.ID))

	list, err := f.engine.ListForCustomer(f.customer)
	require.NoError(t, err)
	assert.Len(t, list, 2, "cancelled orders stay listed")

	_, err = f.engine.ListForCustomer(f.shop)
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))
}
