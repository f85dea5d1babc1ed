// handlers/request_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mangemate/models"
	"mangemate/store"
	"mangemate/utils"
	"mangemate/websocket"
)

type RequestHandler struct {
	Requests store.RequestStore
	Hub      *websocket.Hub
}

func NewRequestHandler(requests store.RequestStore, hub *websocket.Hub) *RequestHandler {
	return &RequestHandler{Requests: requests, Hub: hub}
}

// Create stamps the incoming request with the current time and stores
// it. The referenced asset id must be well-formed; storing a malformed
// reference would only surface later as a silently missing join row.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Request
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if _, err := primitive.ObjectIDFromHex(req.RequestID); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id in requestId")
		return
	}

	req.Date = time.Now()
	if req.Status == "" {
		req.Status = models.RequestStatusRequested
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := h.Requests.Insert(ctx, &req)
	if err != nil {
		log.Printf("request insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create request")
		return
	}

	h.Hub.BroadcastRequestUpdate(websocket.RequestUpdate{
		Type:      websocket.RequestCreated,
		RequestID: id.Hex(),
		Data:      req,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   id,
	})
}

// ListForEmploy returns the employee's requests joined to their assets.
func (h *RequestHandler) ListForEmploy(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Requests.ListForEmploy(ctx, email)
	if err != nil {
		log.Printf("employ requests aggregate failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// ListForHR returns requests targeting the HR's inventory, joined the
// same way.
func (h *RequestHandler) ListForHR(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Requests.ListForHR(ctx, email)
	if err != nil {
		log.Printf("hr requests aggregate failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request id format")
		return
	}

	var payload struct {
		ApprovalDate string `json:"approvalDate"`
	}
	if err := utils.ParseJSON(r, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Requests.Approve(ctx, id, payload.ApprovalDate); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "request not found")
			return
		}
		log.Printf("request approve failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to approve request")
		return
	}

	h.Hub.BroadcastRequestUpdate(websocket.RequestUpdate{
		Type:      websocket.RequestApproved,
		RequestID: id.Hex(),
		Data:      map[string]string{"approvalDate": payload.ApprovalDate},
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged":  true,
		"modifiedCount": 1,
	})
}

// Delete cancels a pending request. Approved requests are immutable and
// cannot be cancelled by the requester.
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req, err := h.Requests.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "request not found")
			return
		}
		log.Printf("request lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	if req.Status == models.RequestStatusApproved {
		utils.RespondWithError(w, http.StatusConflict, "Cannot cancel once the product is approved")
		return
	}

	if err := h.Requests.Delete(ctx, id); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "request not found")
			return
		}
		log.Printf("request delete failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete request")
		return
	}

	h.Hub.BroadcastRequestUpdate(websocket.RequestUpdate{
		Type:      websocket.RequestCancelled,
		RequestID: id.Hex(),
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"deletedCount": 1,
	})
}
