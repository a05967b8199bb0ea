package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/mocks"
)

func seedCatalog(t *testing.T) *mocks.MockProductStore {
	t.Helper()

	productStore := mocks.NewMockProductStore()
	base := time.Now().UTC()
	for i, spec := range []struct {
		name     string
		price    float64
		category string
		active   bool
	}{
		{"Keyboard", 49.99, "electronics", true},
		{"Monitor", 199.99, "electronics", true},
		{"Desk", 299.99, "furniture", true},
		{"Discontinued Mouse", 9.99, "electronics", false},
	} {
		product := &domain.Product{
			ID:        uuid.New(),
			Name:      spec.name,
			Price:     spec.price,
			Stock:     10,
			Category:  spec.category,
			IsActive:  spec.active,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		productStore.Products[product.ID] = product
	}
	return productStore
}

func TestProductList(t *testing.T) {
	t.Parallel()

	handler := NewProductHandler(seedCatalog(t), nil)

	t.Run("hides inactive products", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.List(recorder, jsonRequest(t, "GET", "/api/products", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Len(t, body["products"], 3)
		assert.EqualValues(t, 3, body["total"])
	})

	t.Run("category and price filters", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.List(recorder, jsonRequest(t,
			"GET", "/api/products?category=electronics&max_price=100", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		products := body["products"].([]interface{})
		require.Len(t, products, 1)
		assert.Equal(t, "Keyboard", products[0].(map[string]interface{})["name"])
	})

	t.Run("price sort ascending", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.List(recorder, jsonRequest(t,
			"GET", "/api/products?sort_by=price&sort_order=asc", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		products := body["products"].([]interface{})
		require.Len(t, products, 3)
		assert.Equal(t, "Keyboard", products[0].(map[string]interface{})["name"])
		assert.Equal(t, "Desk", products[2].(map[string]interface{})["name"])
	})
}

func TestProductGet(t *testing.T) {
	t.Parallel()

	productStore := seedCatalog(t)
	handler := NewProductHandler(productStore, nil)

	var activeID, inactiveID uuid.UUID
	for id, p := range productStore.Products {
		if p.IsActive {
			activeID = id
		} else {
			inactiveID = id
		}
	}

	t.Run("active product", func(t *testing.T) {
		req := withPathParam(
			jsonRequest(t, "GET", "/api/products/"+activeID.String(), nil),
			"id", activeID.String())

		recorder := httptest.NewRecorder()
		handler.Get(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("inactive product hidden", func(t *testing.T) {
		req := withPathParam(
			jsonRequest(t, "GET", "/api/products/"+inactiveID.String(), nil),
			"id", inactiveID.String())

		recorder := httptest.NewRecorder()
		handler.Get(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Product not available", body["error"])
	})

	t.Run("unknown product", func(t *testing.T) {
		id := uuid.New().String()
		req := withPathParam(jsonRequest(t, "GET", "/api/products/"+id, nil), "id", id)

		recorder := httptest.NewRecorder()
		handler.Get(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Product not found", body["error"])
	})
}

func TestProductCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid product",
			payload: map[string]interface{}{
				"name":     "Webcam",
				"price":    79.99,
				"stock":    25,
				"category": "electronics",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing name",
			payload: map[string]interface{}{
				"price": 79.99,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "negative price",
			payload: map[string]interface{}{
				"name":  "Webcam",
				"price": -1.0,
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productStore := mocks.NewMockProductStore()
			handler := NewProductHandler(productStore, nil)

			recorder := httptest.NewRecorder()
			handler.Create(recorder, jsonRequest(t, "POST", "/api/products", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				body := decodeBody(t, recorder)
				assert.Equal(t, "Product created successfully", body["message"])
				assert.Len(t, productStore.Products, 1)
				for _, p := range productStore.Products {
					assert.True(t, p.IsActive)
				}
			} else {
				assert.Empty(t, productStore.Products)
			}
		})
	}
}

func TestProductUpdate(t *testing.T) {
	t.Parallel()

	productStore := seedCatalog(t)
	handler := NewProductHandler(productStore, nil)

	var target *domain.Product
	for _, p := range productStore.Products {
		if p.Name == "Keyboard" {
			target = p
		}
	}
	require.NotNil(t, target)

	req := jsonRequest(t, "PUT", "/api/products/"+target.ID.String(), map[string]interface{}{
		"price":     59.99,
		"is_active": false,
	})
	req = withPathParam(req, "id", target.ID.String())

	recorder := httptest.NewRecorder()
	handler.Update(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Product updated successfully", body["message"])

	updated := productStore.Products[target.ID]
	assert.Equal(t, 59.99, updated.Price)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Keyboard", updated.Name, "fields absent from the payload are unchanged")
}

func TestProductDelete(t *testing.T) {
	t.Parallel()

	productStore := seedCatalog(t)
	handler := NewProductHandler(productStore, nil)

	var id uuid.UUID
	for pid := range productStore.Products {
		id = pid
		break
	}

	req := withPathParam(jsonRequest(t, "DELETE", "/api/products/"+id.String(), nil), "id", id.String())
	recorder := httptest.NewRecorder()
	handler.Delete(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, productStore.Products, id)

	recorder = httptest.NewRecorder()
	handler.Delete(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestProductCategories(t *testing.T) {
	t.Parallel()

	handler := NewProductHandler(seedCatalog(t), nil)

	recorder := httptest.NewRecorder()
	handler.Categories(recorder, jsonRequest(t, "GET", "/api/products/categories", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, []interface{}{"electronics", "furniture"}, body["categories"])
}
