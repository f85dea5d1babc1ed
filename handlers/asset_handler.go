// handlers/asset_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mangemate/middleware"
	"mangemate/models"
	"mangemate/store"
	"mangemate/utils"
)

// quantityRetries bounds the conditional-update loop in AdjustQuantity.
const quantityRetries = 3

type AssetHandler struct {
	Assets store.AssetStore
}

func NewAssetHandler(assets store.AssetStore) *AssetHandler {
	return &AssetHandler{Assets: assets}
}

// ListByHR returns only the caller's own inventory, keyed by the email
// decoded from the session credential.
func (h *AssetHandler) ListByHR(w http.ResponseWriter, r *http.Request) {
	email := middleware.CallerEmail(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assets, err := h.Assets.FindByHREmail(ctx, email)
	if err != nil {
		log.Printf("assets Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assets, err := h.Assets.FindAll(ctx)
	if err != nil {
		log.Printf("assets Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	asset, err := h.Assets.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		log.Printf("asset lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var asset models.Asset
	if err := utils.ParseJSON(r, &asset); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := h.Assets.Insert(ctx, &asset)
	if err != nil {
		log.Printf("asset insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create asset")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   id,
	})
}

type updateAssetRequest struct {
	AssetsName string      `json:"assetsName"`
	AssetsType string      `json:"assetsType"`
	Quantity   interface{} `json:"quantity"`
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}

	var req updateAssetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	modified, err := h.Assets.UpdateDetails(ctx, id, req.AssetsName, req.AssetsType, coerceInt(req.Quantity))
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		log.Printf("asset update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred while updating the product.")
		return
	}

	if !modified {
		utils.RespondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "No changes made to the product."})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully!"})
}

// Delete removes an asset only when the caller is its owning HR.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}

	email := middleware.CallerEmail(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Assets.Delete(ctx, id, email); err != nil {
		switch err {
		case store.ErrNotFound:
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
		case store.ErrNotOwner:
			utils.RespondWithError(w, http.StatusUnauthorized, "only the owning HR can delete this asset")
		default:
			log.Printf("asset delete failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete asset")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"deletedCount": 1,
	})
}

type adjustQuantityRequest struct {
	QuantityToUpdate int    `json:"quantityToUpdate"`
	Status           string `json:"status"`
}

// AdjustQuantity applies a delta in the given direction. Decrease from a
// quantity of zero is a reported no-op; otherwise the new value is
// written with a conditional update predicated on the quantity that was
// read, retried a bounded number of times under contention.
func (h *AssetHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}

	var req adjustQuantityRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Status != models.QuantityIncrease && req.Status != models.QuantityDecrease {
		utils.RespondWithError(w, http.StatusBadRequest, "status must be 'increase' or 'decrease'")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	for attempt := 0; attempt < quantityRetries; attempt++ {
		asset, err := h.Assets.FindByID(ctx, id)
		if err != nil {
			if err == store.ErrNotFound {
				utils.RespondWithError(w, http.StatusNotFound, "asset not found")
				return
			}
			log.Printf("asset lookup failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
			return
		}

		newQuantity := asset.Quantity
		if req.Status == models.QuantityDecrease {
			if asset.Quantity == 0 {
				utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Quantity already 0"})
				return
			}
			newQuantity -= req.QuantityToUpdate
		} else {
			newQuantity += req.QuantityToUpdate
		}

		if newQuantity == asset.Quantity {
			utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "No change in quantity"})
			return
		}

		applied, err := h.Assets.SetQuantity(ctx, id, asset.Quantity, newQuantity)
		if err != nil {
			log.Printf("quantity update failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to update quantity")
			return
		}
		if applied {
			utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Quantity updated successfully"})
			return
		}
		// Lost the race to a concurrent writer; re-read and retry.
	}

	utils.RespondWithError(w, http.StatusConflict, "quantity changed concurrently, try again")
}

// coerceInt mirrors the tolerant quantity parsing of the HTTP API:
// clients send the field as either a number or a numeric string.
func coerceInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
