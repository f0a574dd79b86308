package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

// fakeTxManager 直通事务管理器
type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakePublisher 记录发布的事件,用于断言
type fakePublisher struct {
	events []string
	failed bool
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	if f.failed {
		return assert.AnError
	}
	f.events = append(f.events, routingKey)
	return nil
}

// fakeOrderRepository 内存版订单仓储
type fakeOrderRepository struct {
	orders map[uint]*order.Order
	nextID uint
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[uint]*order.Order), nextID: 1}
}

func (f *fakeOrderRepository) Create(_ context.Context, o *order.Order) error {
	o.ID = f.nextID
	f.nextID++
	for i := range o.Items {
		o.Items[i].ID = uint(i + 1)
		o.Items[i].OrderID = o.ID
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepository) FindByID(_ context.Context, id uint) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepository) ListByUserID(_ context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepository) UpdateStatus(_ context.Context, id uint, from, to order.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return order.ErrInvalidStatusTransition
	}
	o.Status = to
	return nil
}

func (f *fakeOrderRepository) Delete(_ context.Context, id uint) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepository) ListItemsByOrderAndUser(_ context.Context, orderID, userID uint, page, pageSize int) ([]order.OrderItem, int64, error) {
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID || len(o.Items) == 0 {
		return nil, 0, order.ErrOrderNotFound
	}
	return o.Items, int64(len(o.Items)), nil
}

func (f *fakeOrderRepository) FindItemByIDOrderUser(_ context.Context, itemID, orderID, userID uint) (*order.OrderItem, error) {
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, order.ErrOrderItemNotFound
	}
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, order.ErrOrderItemNotFound
}

// fakeCartRepository 内存版购物车仓储(只实现下单用到的部分)
type fakeCartRepository struct {
	carts map[uint]*cart.ShoppingCart // userID → cart
}

func newFakeCartRepository(carts ...*cart.ShoppingCart) *fakeCartRepository {
	f := &fakeCartRepository{carts: make(map[uint]*cart.ShoppingCart)}
	for _, c := range carts {
		f.carts[c.UserID] = c
	}
	return f
}

func (f *fakeCartRepository) FindByUserID(_ context.Context, userID uint) (*cart.ShoppingCart, error) {
	c, ok := f.carts[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return c, nil
}

func (f *fakeCartRepository) Create(_ context.Context, c *cart.ShoppingCart) error { return nil }

func (f *fakeCartRepository) Delete(_ context.Context, cartID uint) error {
	for userID, c := range f.carts {
		if c.ID == cartID {
			delete(f.carts, userID)
			return nil
		}
	}
	return cart.ErrCartNotFound
}

func (f *fakeCartRepository) InsertItem(_ context.Context, _ *cart.CartItem) error { return nil }

func (f *fakeCartRepository) UpdateItemQuantity(_ context.Context, _, _ uint, _ int) error {
	return nil
}

func (f *fakeCartRepository) FindItemByCartAndBook(_ context.Context, _, _ uint) (*cart.CartItem, error) {
	return nil, cart.ErrCartItemNotFound
}

func (f *fakeCartRepository) FindItemByID(_ context.Context, _, _ uint) (*cart.CartItem, error) {
	return nil, cart.ErrCartItemNotFound
}

func (f *fakeCartRepository) UpdateItem(_ context.Context, _ *cart.CartItem) error { return nil }

func (f *fakeCartRepository) DeleteItem(_ context.Context, _, _ uint) error {
	return cart.ErrCartItemNotFound
}

// fakeBookRepository 内存版图书仓储
type fakeBookRepository struct {
	books map[uint]*book.Book
}

func newFakeBookRepository(books ...*book.Book) *fakeBookRepository {
	f := &fakeBookRepository{books: make(map[uint]*book.Book)}
	for _, b := range books {
		f.books[b.ID] = b
	}
	return f
}

func (f *fakeBookRepository) Create(_ context.Context, b *book.Book) error { return nil }

func (f *fakeBookRepository) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeBookRepository) FindByISBN(_ context.Context, _ string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (f *fakeBookRepository) Update(_ context.Context, _ *book.Book) error { return nil }

func (f *fakeBookRepository) Delete(_ context.Context, _ uint) error { return nil }

func (f *fakeBookRepository) Search(_ context.Context, _ []book.Clause, _ book.PageParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

// cartWith 构造带条目的购物车
func cartWith(userID uint, items ...*cart.CartItem) *cart.ShoppingCart {
	return &cart.ShoppingCart{ID: userID * 10, UserID: userID, Items: items}
}

// TestPlaceOrder_SnapshotsPriceAndDeletesCart 下单冻结价格并整车删除购物车
func TestPlaceOrder_SnapshotsPriceAndDeletesCart(t *testing.T) {
	b := &book.Book{ID: 1, ISBN: "111", Title: "Go语言实战", Price: 1000}
	cartRepo := newFakeCartRepository(cartWith(7, &cart.CartItem{ID: 1, CartID: 70, BookID: 1, Quantity: 3}))
	orderRepo := newFakeOrderRepository()
	publisher := &fakePublisher{}
	uc := NewPlaceOrderUseCase(orderRepo, cartRepo, newFakeBookRepository(b), fakeTxManager{}, publisher)

	view, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 7, ShippingAddress: "Main St"})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", view.Status)
	assert.Equal(t, int64(3000), view.Total) // 10.00元 × 3
	assert.Equal(t, "30.00", view.TotalYuan)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Go语言实战", view.Items[0].BookTitle)
	assert.Equal(t, "111", view.Items[0].BookISBN)
	assert.Equal(t, int64(1000), view.Items[0].Price)
	assert.Equal(t, 3, view.Items[0].Quantity)

	// 购物车已整车删除
	_, err = cartRepo.FindByUserID(context.Background(), 7)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	// 事件已发布
	assert.Equal(t, []string{EventOrderCreated}, publisher.events)
}

// TestPlaceOrder_SnapshotSurvivesPriceChange 下单后改价不影响历史订单
func TestPlaceOrder_SnapshotSurvivesPriceChange(t *testing.T) {
	b := &book.Book{ID: 1, ISBN: "111", Title: "Go语言实战", Price: 1000}
	cartRepo := newFakeCartRepository(cartWith(7, &cart.CartItem{ID: 1, CartID: 70, BookID: 1, Quantity: 1}))
	orderRepo := newFakeOrderRepository()
	uc := NewPlaceOrderUseCase(orderRepo, cartRepo, newFakeBookRepository(b), fakeTxManager{}, nil)

	view, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 7, ShippingAddress: "Main St"})
	require.NoError(t, err)

	// 改价
	b.Price = 9999

	persisted, err := orderRepo.FindByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), persisted.Items[0].Price)
	assert.Equal(t, int64(1000), persisted.Total)
}

// TestPlaceOrder_EmptyCartRejected 空购物车(或无购物车)不能下单
func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	orderRepo := newFakeOrderRepository()

	// 购物车不存在
	uc := NewPlaceOrderUseCase(orderRepo, newFakeCartRepository(), newFakeBookRepository(), fakeTxManager{}, nil)
	_, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 7, ShippingAddress: "Main St"})
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	// 购物车存在但为空:同样的错误
	uc = NewPlaceOrderUseCase(orderRepo, newFakeCartRepository(cartWith(7)), newFakeBookRepository(), fakeTxManager{}, nil)
	_, err = uc.Execute(context.Background(), PlaceOrderRequest{UserID: 7, ShippingAddress: "Main St"})
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	// 没有创建任何订单
	assert.Empty(t, orderRepo.orders)
}

// TestPlaceOrder_BlankAddressRejected 收货地址不能为空白
func TestPlaceOrder_BlankAddressRejected(t *testing.T) {
	uc := NewPlaceOrderUseCase(newFakeOrderRepository(), newFakeCartRepository(), newFakeBookRepository(), fakeTxManager{}, nil)

	for _, addr := range []string{"", "   ", "\t"} {
		_, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 7, ShippingAddress: addr})
		assert.ErrorIs(t, err, order.ErrInvalidAddress)
	}
}

// TestPlaceOrder_MultipleItems 多条目订单:总金额为各明细小计之和
func TestPlaceOrder_MultipleItems(t *testing.T) {
	b1 := &book.Book{ID: 1, ISBN: "111", Title: "书一", Price: 1000}
	b2 := &book.Book{ID: 2, ISBN: "222", Title: "书二", Price: 2500}
	cartRepo := newFakeCartRepository(cartWith(7,
		&cart.CartItem{ID: 1, CartID: 70, BookID: 1, Quantity: 2},
		&cart.CartItem{ID: 2, CartID: 70, BookID: 2, Quantity: 1},
	))
	uc := NewPlaceOrderUseCase(newFakeOrderRepository(), cartRepo, newFakeBookRepository(b1, b2), fakeTxManager{}, nil)

	view, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 7, ShippingAddress: "Main St"})
	require.NoError(t, err)

	assert.Equal(t, int64(2*1000+2500), view.Total)
	assert.Len(t, view.Items, 2)
}

// TestPlaceOrder_PublishFailureDoesNotFailOrder 事件发布失败不影响下单结果
func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	b := &book.Book{ID: 1, ISBN: "111", Title: "Go语言实战", Price: 1000}
	cartRepo := newFakeCartRepository(cartWith(7, &cart.CartItem{ID: 1, CartID: 70, BookID: 1, Quantity: 1}))
	uc := NewPlaceOrderUseCase(newFakeOrderRepository(), cartRepo, newFakeBookRepository(b), fakeTxManager{}, &fakePublisher{failed: true})

	view, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 7, ShippingAddress: "Main St"})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", view.Status)
}

// TestGetOrder_OwnershipConcealed 他人的订单与不存在的订单对外不可区分
func TestGetOrder_OwnershipConcealed(t *testing.T) {
	orderRepo := newFakeOrderRepository()
	o := order.NewOrder(order.GenerateOrderNo(), 7, "Main St", []order.OrderItem{
		{BookID: 1, BookTitle: "Go语言实战", BookISBN: "111", Quantity: 1, Price: 1000},
	})
	require.NoError(t, orderRepo.Create(context.Background(), o))

	uc := NewGetOrderUseCase(orderRepo)

	// 本人可见
	view, err := uc.Execute(context.Background(), o.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNo, view.OrderNo)

	// 他人 → 与不存在同一错误
	_, err = uc.Execute(context.Background(), o.ID, 8)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	_, err = uc.Execute(context.Background(), 999, 7)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
