package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPlaceOrderRequest_Valid(t *testing.T) {
	v := New()

	req := PlaceOrderRequest{
		CustomerID: 7,
		ProductID:  1,
		Quantity:   3,
	}

	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestPlaceOrderRequest_NonPositiveQuantity(t *testing.T) {
	v := New()

	for _, quantity := range []int{0, -2} {
		req := PlaceOrderRequest{CustomerID: 7, ProductID: 1, Quantity: quantity}
		if err := v.Struct(req); err == nil {
			t.Fatalf("expected validation error for quantity %d, got nil", quantity)
		}
	}
}

func TestPlaceOrderRequest_MissingFields(t *testing.T) {
	v := New()

	req := PlaceOrderRequest{
		// CustomerID and ProductID missing
		Quantity: 1,
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation errors for missing required fields, got nil")
	}
}

func bindThrough(t *testing.T, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/place_order", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req PlaceOrderRequest
	return rec, BindAndValidate(c, &req, New())
}

func TestBindAndValidate_FractionalQuantity(t *testing.T) {
	rec, err := bindThrough(t, `{"customer_id":7,"product_id":1,"quantity":2.5}`)
	if err == nil {
		t.Fatal("expected bind error for fractional quantity, got nil")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	rec, err := bindThrough(t, `{"customer_id":`)
	if err == nil {
		t.Fatal("expected bind error for malformed body, got nil")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
