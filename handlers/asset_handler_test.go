package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mangemate/models"
)

func authedJSON(t *testing.T, handler http.HandlerFunc, method, target, email string, vars map[string]string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	} else {
		buf.WriteString("{}")
	}

	req := httptest.NewRequest(method, target, &buf)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	if email != "" {
		req = req.WithContext(context.WithValue(req.Context(), "userEmail", email))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func adjustQuantity(t *testing.T, h *AssetHandler, id string, delta int, direction string) *httptest.ResponseRecorder {
	t.Helper()
	return authedJSON(t, h.AdjustQuantity, "PATCH", "/assets/quantity/"+id, "",
		map[string]string{"id": id},
		map[string]interface{}{"quantityToUpdate": delta, "status": direction})
}

func TestAdjustQuantityDecrease(t *testing.T) {
	assets := newFakeAssetStore()
	h := NewAssetHandler(assets)

	id := assets.add(models.Asset{AssetsName: "Laptop", Quantity: 10})

	rec := adjustQuantity(t, h, id.Hex(), 3, models.QuantityDecrease)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quantity updated successfully")

	a, err := assets.FindByID(nil, id)
	require.NoError(t, err)
	assert.Equal(t, 7, a.Quantity)
}

func TestAdjustQuantityDecreaseAtZeroIsReportedNoop(t *testing.T) {
	assets := newFakeAssetStore()
	h := NewAssetHandler(assets)

	id := assets.add(models.Asset{AssetsName: "Chair", Quantity: 0})

	rec := adjustQuantity(t, h, id.Hex(), 5, models.QuantityDecrease)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quantity already 0")

	a, err := assets.FindByID(nil, id)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Quantity)
}

func TestAdjustQuantityIncreaseIsUnbounded(t *testing.T) {
	assets := newFakeAssetStore()
	h := NewAssetHandler(assets)

	id := assets.add(models.Asset{AssetsName: "Monitor", Quantity: 2})

	rec := adjustQuantity(t, h, id.Hex(), 100, models.QuantityIncrease)
	require.Equal(t, http.StatusOK, rec.Code)

	a, err := assets.FindByID(nil, id)
	require.NoError(t, err)
	assert.Equal(t, 102, a.Quantity)
}

func TestAdjustQuantityUnknownAsset(t *testing.T) {
	h := NewAssetHandler(newFakeAssetStore())

	rec := adjustQuantity(t, h, "64b000000000000000000001", 1, models.QuantityDecrease)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdjustQuantityRejectsUnknownDirection(t *testing.T) {
	assets := newFakeAssetStore()
	h := NewAssetHandler(assets)
	id := assets.add(models.Asset{AssetsName: "Desk", Quantity: 4})

	rec := adjustQuantity(t, h, id.Hex(), 1, "sideways")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateReportsNoChange(t *testing.T) {
	assets := newFakeAssetStore()
	h := NewAssetHandler(assets)

	id := assets.add(models.Asset{AssetsName: "Laptop", AssetsType: "returnable", Quantity: 5})

	body := map[string]interface{}{"assetsName": "Laptop", "assetsType": "returnable", "quantity": 5}
	rec := authedJSON(t, h.Update, "PUT", "/assets/"+id.Hex(), "hr@corp.com", map[string]string{"id": id.Hex()}, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No changes made to the product.")

	body["quantity"] = "9" // numeric string is coerced
	rec = authedJSON(t, h.Update, "PUT", "/assets/"+id.Hex(), "hr@corp.com", map[string]string{"id": id.Hex()}, body)
	require.Equal(t, http.StatusOK, rec.Code)

	a, err := assets.FindByID(nil, id)
	require.NoError(t, err)
	assert.Equal(t, 9, a.Quantity)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	assets := newFakeAssetStore()
	h := NewAssetHandler(assets)

	id := assets.add(models.Asset{AssetsName: "Printer", HR: models.HRRef{Email: "owner@corp.com"}})

	rec := authedJSON(t, h.Delete, "DELETE", "/assets/"+id.Hex(), "intruder@corp.com", map[string]string{"id": id.Hex()}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	_, err := assets.FindByID(nil, id)
	require.NoError(t, err, "asset must survive a non-owner delete")

	rec = authedJSON(t, h.Delete, "DELETE", "/assets/"+id.Hex(), "owner@corp.com", map[string]string{"id": id.Hex()}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = assets.FindByID(nil, id)
	assert.Error(t, err)
}

func TestListByHRFiltersByCaller(t *testing.T) {
	assets := newFakeAssetStore()
	h := NewAssetHandler(assets)

	assets.add(models.Asset{AssetsName: "Mine", HR: models.HRRef{Email: "me@corp.com"}})
	assets.add(models.Asset{AssetsName: "Theirs", HR: models.HRRef{Email: "them@corp.com"}})

	req := httptest.NewRequest("GET", "/assets/hr", nil)
	req = req.WithContext(context.WithValue(req.Context(), "userEmail", "me@corp.com"))
	rec := httptest.NewRecorder()
	h.ListByHR(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Mine", got[0].AssetsName)
}
