package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trottiparts/trottiparts-api/internal/cache"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) bool {
	raw, ok := f.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

type fakeOrderRepo struct {
	orders     map[uint]domain.Order
	nextID     uint
	failUpdate bool
	cleared    []uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]domain.Order), nextID: 1}
}

func (f *fakeOrderRepo) Create(_ context.Context, order domain.Order, cartID uint) (domain.Order, error) {
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = order
	f.cleared = append(f.cleared, cartID)
	return order, nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, service.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) FindByUserID(_ context.Context, userID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uint, status domain.OrderStatus) error {
	if f.failUpdate {
		return errors.New("connection reset")
	}
	order, ok := f.orders[id]
	if !ok {
		return service.ErrOrderNotFound
	}
	order.Status = status
	f.orders[id] = order
	return nil
}

// fakeMailer hands sent orders over a channel because the service mails
// from its own goroutine.
type fakeMailer struct {
	sent chan domain.Order
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan domain.Order, 1)}
}

func (f *fakeMailer) SendOrderConfirmation(order domain.Order) {
	f.sent <- order
}

func (f *fakeMailer) wait(t *testing.T) domain.Order {
	t.Helper()

	select {
	case order := <-f.sent:
		return order
	case <-time.After(time.Second):
		t.Fatal("no confirmation mail was sent")
		return domain.Order{}
	}
}

func TestCheckout(t *testing.T) {
	carts := newFakeCartRepo()
	carts.items[1] = domain.CartItem{PartID: 1, Name: "Frein avant", UnitPriceCents: 1999, Quantity: 2}
	carts.items[2] = domain.CartItem{PartID: 2, Name: "Batterie 36V", UnitPriceCents: 5000, Quantity: 1}

	repo := newFakeOrderRepo()
	mail := newFakeMailer()
	svc := service.NewOrderService(repo, carts, mail, newFakeCache())

	order, err := svc.Checkout(context.Background(), 1, service.CheckoutInput{
		CustomerName:  "Léa Martin",
		CustomerEmail: "lea@example.fr",
		ShippingLine:  "12 rue de la Trottinette",
		City:          "Lyon",
		PostalCode:    "69001",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.Number)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, int64(8998), order.SubtotalCents)
	assert.Equal(t, int64(1800), order.TaxCents)
	assert.Equal(t, int64(10798), order.TotalCents)
	assert.Len(t, order.Items, 2)

	// The cart was handed to the repository for the transactional wipe.
	assert.Equal(t, []uint{1}, repo.cleared)

	assert.Equal(t, order.Number, mail.wait(t).Number)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc := service.NewOrderService(newFakeOrderRepo(), newFakeCartRepo(), newFakeMailer(), newFakeCache())

	_, err := svc.Checkout(context.Background(), 1, service.CheckoutInput{})
	assert.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestGetOrder_SomeoneElsesOrderReadsAsMissing(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = domain.Order{ID: 1, UserID: 42, Status: domain.OrderPending}
	svc := service.NewOrderService(repo, newFakeCartRepo(), newFakeMailer(), newFakeCache())

	_, err := svc.GetOrder(context.Background(), 7, 1)
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = domain.Order{ID: 1, UserID: 42, Status: domain.OrderPaid}
	svc := service.NewOrderService(repo, newFakeCartRepo(), newFakeMailer(), newFakeCache())

	order, err := svc.UpdateStatus(context.Background(), 1, domain.OrderShipped)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderShipped, order.Status)
	assert.Equal(t, domain.OrderShipped, repo.orders[1].Status)
}

func TestUpdateStatus_InvalidAndTerminal(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = domain.Order{ID: 1, Status: domain.OrderDelivered}
	svc := service.NewOrderService(repo, newFakeCartRepo(), newFakeMailer(), newFakeCache())

	_, err := svc.UpdateStatus(context.Background(), 1, domain.OrderStatus("mystery"))
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 1, domain.OrderPaid)
	assert.ErrorIs(t, err, service.ErrStatusLocked)
}

func TestUpdateStatus_OptimisticPatchCommit(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = domain.Order{ID: 1, UserID: 42, Status: domain.OrderPaid}

	cached := newFakeCache()
	svc := service.NewOrderService(repo, newFakeCartRepo(), newFakeMailer(), cached)

	// Warm the admin listing.
	_, err := svc.ListAllOrders(context.Background())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), 1, domain.OrderShipped)
	require.NoError(t, err)

	// The listing was invalidated after commit; the next read hits the
	// repository and sees the new ground truth.
	orders, err := svc.ListAllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderShipped, orders[0].Status)
}

func TestUpdateStatus_RollbackRestoresCachedListing(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = domain.Order{ID: 1, UserID: 42, Number: "TP-AAAA0001", Status: domain.OrderPaid}

	cached := newFakeCache()
	svc := service.NewOrderService(repo, newFakeCartRepo(), newFakeMailer(), cached)

	before, err := svc.ListAllOrders(context.Background())
	require.NoError(t, err)

	repo.failUpdate = true
	_, err = svc.UpdateStatus(context.Background(), 1, domain.OrderShipped)
	require.Error(t, err)

	// The cached listing is back to the pre-patch snapshot, verbatim.
	var after []domain.Order
	require.True(t, cached.Get(context.Background(), cache.Key("orders", "admin"), &after))
	assert.Equal(t, before, after)
	assert.Equal(t, domain.OrderPaid, repo.orders[1].Status)
}
