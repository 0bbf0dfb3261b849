package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
)

func newCheckoutFixture(products ...*domain.Product) (*CheckoutService, *fakeTransactionRepo, *fakeProductRepo) {
	txRepo := newFakeTransactionRepo()
	productRepo := newFakeProductRepo(products...)
	svc := NewCheckoutService(CheckoutDependencies{
		TransactionRepo: txRepo,
		ProductRepo:     productRepo,
		Logger:          zap.NewNop(),
	})
	return svc, txRepo, productRepo
}

func intPtr(v int) *int { return &v }

func serviceProduct(id, name string, price int64) *domain.Product {
	return &domain.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: domain.CategoryHair,
	}
}

func retailProduct(id, name string, price int64, stock, reorder int) *domain.Product {
	return &domain.Product{
		ID:              id,
		Name:            name,
		Price:           decimal.NewFromInt(price),
		Category:        domain.CategoryRetail,
		IsRetail:        true,
		StockLevel:      intPtr(stock),
		MinReorderPoint: intPtr(reorder),
	}
}

func cashier() *domain.StaffMember {
	return &domain.StaffMember{ID: "s1", Name: "Sarah", Role: domain.StaffRoleStaff, Active: true}
}

func TestCommitTotalsQuantityTimesPrice(t *testing.T) {
	svc, _, _ := newCheckoutFixture(serviceProduct("p1", "Haircut", 5000))

	tx, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "p1", Quantity: 2}}, domain.PaymentCash)
	require.NoError(t, err)

	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(10000)),
		"got total %s", tx.TotalAmount)
	require.Len(t, tx.Items, 1)
	assert.Equal(t, 2, tx.Items[0].Quantity)
	assert.True(t, tx.Items[0].UnitPrice.Equal(decimal.NewFromInt(5000)))
}

func TestCommitCapturesPriceAtSaleTime(t *testing.T) {
	product := serviceProduct("p1", "Haircut", 5000)
	svc, txRepo, productRepo := newCheckoutFixture(product)

	tx, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "p1", Quantity: 1}}, domain.PaymentCard)
	require.NoError(t, err)

	// A later price change must not rewrite recorded history.
	product.Price = decimal.NewFromInt(9000)
	require.NoError(t, productRepo.Update(context.Background(), product))

	stored, err := txRepo.GetByID(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.NewFromInt(5000)))
}

func TestCommitGeneratesReceiptKey(t *testing.T) {
	svc, _, _ := newCheckoutFixture(serviceProduct("p1", "Haircut", 5000))

	tx, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "p1", Quantity: 1}}, domain.PaymentCash)
	require.NoError(t, err)

	assert.Regexp(t, `^RCT-[0-9A-F]{8}$`, tx.ExternalKey)
}

func TestCommitRejectsEmptyCart(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	_, err := svc.Commit(context.Background(), cashier(), nil, domain.PaymentCash)
	assert.Equal(t, "EMPTY_CART", domainCode(t, err))
}

func TestCommitRejectsUnknownPaymentMethod(t *testing.T) {
	svc, _, _ := newCheckoutFixture(serviceProduct("p1", "Haircut", 5000))

	_, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "p1", Quantity: 1}}, domain.PaymentMethod("Barter"))
	assert.Equal(t, "INVALID_LINE", domainCode(t, err))
}

func TestCommitRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := newCheckoutFixture(serviceProduct("p1", "Haircut", 5000))

	_, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "p1", Quantity: 0}}, domain.PaymentCash)
	assert.Equal(t, "INVALID_LINE", domainCode(t, err))
}

func TestCommitRejectsUnknownProduct(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	_, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "ghost", Quantity: 1}}, domain.PaymentCash)
	assert.Equal(t, "INVALID_LINE", domainCode(t, err))
}

func TestCommitDecrementsRetailStock(t *testing.T) {
	svc, _, productRepo := newCheckoutFixture(retailProduct("r1", "Pomade", 3500, 10, 5))

	_, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "r1", Quantity: 3}}, domain.PaymentCash)
	require.NoError(t, err)

	product, err := productRepo.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	require.NotNil(t, product.StockLevel)
	assert.Equal(t, 7, *product.StockLevel)
}

func TestCommitClampsStockAtZero(t *testing.T) {
	svc, _, productRepo := newCheckoutFixture(retailProduct("r1", "Pomade", 3500, 2, 5))

	_, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "r1", Quantity: 5}}, domain.PaymentCash)
	require.NoError(t, err)

	product, err := productRepo.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	require.NotNil(t, product.StockLevel)
	assert.Equal(t, 0, *product.StockLevel)
}

func TestCommitIgnoresStockForServiceLines(t *testing.T) {
	svc, _, productRepo := newCheckoutFixture(
		serviceProduct("p1", "Haircut", 5000),
		retailProduct("r1", "Pomade", 3500, 10, 5),
	)

	_, err := svc.Commit(context.Background(), cashier(), []CheckoutLine{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "r1", Quantity: 1},
	}, domain.PaymentCash)
	require.NoError(t, err)

	product, err := productRepo.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 9, *product.StockLevel)
}

func TestCommitSucceedsWhenStockDecrementFails(t *testing.T) {
	svc, txRepo, productRepo := newCheckoutFixture(retailProduct("r1", "Pomade", 3500, 10, 5))
	productRepo.decrementErr = errStorageDown

	tx, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "r1", Quantity: 1}}, domain.PaymentCash)
	require.NoError(t, err)

	// The sale stands; stock correction is manual follow-up.
	stored, err := txRepo.GetByID(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestCommitCompensatesHeaderWhenItemsFail(t *testing.T) {
	svc, txRepo, _ := newCheckoutFixture(serviceProduct("p1", "Haircut", 5000))
	txRepo.itemsErr = errStorageDown

	_, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "p1", Quantity: 1}}, domain.PaymentCash)
	assert.Equal(t, "STORAGE_UNAVAILABLE", domainCode(t, err))

	// No headless transaction survives the failed item write.
	txs, listErr := txRepo.List(context.Background(), repository.TransactionFilter{})
	require.NoError(t, listErr)
	assert.Empty(t, txs)
}

func TestCommitFailsWhenHeaderWriteFails(t *testing.T) {
	svc, txRepo, _ := newCheckoutFixture(serviceProduct("p1", "Haircut", 5000))
	txRepo.headerErr = errStorageDown

	_, err := svc.Commit(context.Background(), cashier(),
		[]CheckoutLine{{ProductID: "p1", Quantity: 1}}, domain.PaymentCash)
	assert.Equal(t, "STORAGE_UNAVAILABLE", domainCode(t, err))
}
