package checkoutControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cartControllers "github.com/Alamatniige/izaj-ecommerce-sub001/controllers/cart"
	"github.com/Alamatniige/izaj-ecommerce-sub001/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		Email:            "maria@example.com",
		FirstName:        "Maria",
		LastName:         "Santos",
		RecipientName:    "Maria Santos",
		ShippingPhone:    "09171234567",
		ShippingAddress:  "123 Mabini St",
		ShippingBarangay: "San Isidro",
		ShippingCity:     "Quezon City",
		ShippingProvince: "Metro Manila",
		PaymentMethod:    "cod",
	}
}

func seedCart(t *testing.T, db *gorm.DB, userID string, sale, regular float64, qty int) models.Product {
	t.Helper()
	product := models.Product{Name: "Pendant Lamp", SalePrice: sale, RegularPrice: regular, Image: "lamp.jpg"}
	require.NoError(t, db.Create(&product).Error)
	_, err := cartControllers.AddItem(db, userID, product.ID, qty)
	require.NoError(t, err)
	return product
}

func TestCheckoutRequest_ValidationOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CheckoutRequest)
		want   error
	}{
		{"missing email", func(r *CheckoutRequest) { r.Email = " " }, ErrIncompleteContact},
		{"missing first name", func(r *CheckoutRequest) { r.FirstName = "" }, ErrIncompleteContact},
		{"missing last name", func(r *CheckoutRequest) { r.LastName = "" }, ErrIncompleteContact},
		{"missing street", func(r *CheckoutRequest) { r.ShippingAddress = "" }, ErrIncompleteAddress},
		{"missing city", func(r *CheckoutRequest) { r.ShippingCity = "" }, ErrIncompleteAddress},
		{"missing province", func(r *CheckoutRequest) { r.ShippingProvince = "" }, ErrIncompleteAddress},
		{"missing phone", func(r *CheckoutRequest) { r.ShippingPhone = "  " }, ErrMissingPhone},
		{"missing payment method", func(r *CheckoutRequest) { r.PaymentMethod = "" }, ErrMissingPaymentMethod},
		{"unsupported payment method", func(r *CheckoutRequest) { r.PaymentMethod = "barter" }, ErrMissingPaymentMethod},
		// contact is checked before address, address before phone
		{"contact wins over address", func(r *CheckoutRequest) {
			r.Email = ""
			r.ShippingCity = ""
		}, ErrIncompleteContact},
		{"address wins over phone", func(r *CheckoutRequest) {
			r.ShippingCity = ""
			r.ShippingPhone = ""
		}, ErrIncompleteAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			assert.ErrorIs(t, req.Validate(), tt.want)
		})
	}

	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestComposeDeliveryAddress(t *testing.T) {
	assert.Equal(t,
		"123 Mabini St, San Isidro, Quezon City, Metro Manila, 1100",
		ComposeDeliveryAddress("123 Mabini St", "San Isidro", "Quezon City", "Metro Manila", "1100"))
	// empty components never leave dangling separators
	assert.Equal(t,
		"123 Mabini St, Quezon City, Metro Manila",
		ComposeDeliveryAddress("123 Mabini St", "", "Quezon City", "Metro Manila", "  "))
	assert.Equal(t, "", ComposeDeliveryAddress("", "", ""))
}

func TestSubmitCheckout_FreeShippingOverThreshold(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1", 5000, 5000, 3) // subtotal 15000

	order, err := SubmitCheckout(db, "user-1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, 15000.0, order.TotalAmount)
	assert.Equal(t, 0.0, order.ShippingFee)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, 5000.0, order.Items[0].UnitPrice)

	// cart is cleared only after the order is durably created
	cart, err := cartControllers.GetOrCreateCart(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestSubmitCheckout_FlatFeeUnderThreshold(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1", 3000, 3000, 1)

	order, err := SubmitCheckout(db, "user-1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, 3000.0, order.TotalAmount)
	assert.Equal(t, 100.0, order.ShippingFee)
}

func TestSubmitCheckout_DiscountSnapshot(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1", 5000, 6000, 2)

	order, err := SubmitCheckout(db, "user-1", validRequest())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, 5000.0, item.UnitPrice)
	assert.Equal(t, 2000.0, item.Discount)
	// original unit price reconstructs from the snapshot
	assert.Equal(t, 6000.0, item.UnitPrice+item.Discount/float64(item.Quantity))
}

func TestSubmitCheckout_EmptyCart(t *testing.T) {
	db := setupTestDB(t)
	_, err := SubmitCheckout(db, "user-1", validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitCheckout_SnapshotFrozenAgainstLaterChanges(t *testing.T) {
	db := setupTestDB(t)
	product := seedCart(t, db, "user-1", 5000, 5000, 2)

	order, err := SubmitCheckout(db, "user-1", validRequest())
	require.NoError(t, err)

	// catalog price changes and new cart activity after checkout
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("sale_price", 9999).Error)
	_, err = cartControllers.AddItem(db, "user-1", product.ID, 5)
	require.NoError(t, err)

	var persisted models.Order
	require.NoError(t, db.Preload("Items").First(&persisted, order.ID).Error)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, 5000.0, persisted.Items[0].UnitPrice)
	assert.Equal(t, 2, persisted.Items[0].Quantity)
	assert.Equal(t, 10000.0, persisted.TotalAmount)
}

func TestSubmitCheckout_PersistenceFailureLeavesCartIntact(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1", 3000, 3000, 2)

	// force order creation to fail at the storage boundary
	require.NoError(t, db.Migrator().DropTable(&models.Order{}))

	_, err := SubmitCheckout(db, "user-1", validRequest())
	require.Error(t, err)

	cart, err := cartControllers.GetOrCreateCart(db, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestSubmitCheckout_ValidationBeforeAnySideEffect(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1", 3000, 3000, 1)

	req := validRequest()
	req.ShippingPhone = ""
	_, err := SubmitCheckout(db, "user-1", req)
	assert.ErrorIs(t, err, ErrMissingPhone)

	// no order was created and the cart is untouched
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	cart, err := cartControllers.GetOrCreateCart(db, "user-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}
