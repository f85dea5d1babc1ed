// handlers/user_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mangemate/models"
	"mangemate/store"
	"mangemate/utils"
)

type UserHandler struct {
	Users store.UserStore
}

func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

// RegisterOrFetch is idempotent: repeat registrations return the stored
// record unchanged and never create a duplicate account.
func (h *UserHandler) RegisterOrFetch(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	// models.User never decodes a password from JSON; capture it
	// separately so it can be hashed before touching the store.
	var payload struct {
		models.User
		Password string `json:"password"`
	}
	if err := utils.ParseJSON(r, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user := payload.User
	user.Email = email

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	existing, err := h.Users.FindByEmail(ctx, email)
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, existing)
		return
	}
	if err != store.ErrNotFound {
		log.Printf("user lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	if payload.Password != "" {
		hashed, err := utils.HashPassword(payload.Password)
		if err != nil {
			log.Printf("password hashing failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
			return
		}
		user.Password = hashed
	}
	user.Timestamp = time.Now().UnixMilli()

	id, err := h.Users.Insert(ctx, &user)
	if err != nil {
		log.Printf("user insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   id,
	})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := h.Users.FindAll(ctx)
	if err != nil {
		log.Printf("users Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Users.FindByEmail(ctx, email)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("user lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// GetRole returns only the role field; an unknown email yields an empty
// role rather than an error.
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	role := ""
	user, err := h.Users.FindByEmail(ctx, email)
	if err == nil {
		role = user.Role
	} else if err != store.ErrNotFound {
		log.Printf("role lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"role": role})
}

func (h *UserHandler) GetMyHREmail(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Users.FindByEmail(ctx, email)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("hrEmail lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch hrEmail")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"hrEmail": user.HREmail,
	})
}

func (h *UserHandler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	hrEmail := mux.Vars(r)["hrEmail"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := h.Users.FindByHREmail(ctx, hrEmail)
	if err != nil {
		log.Printf("team members lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch team members")
		return
	}
	if len(users) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No team members found for this HR email")
		return
	}

	members := make([]models.TeamMember, 0, len(users))
	for _, u := range users {
		members = append(members, models.TeamMember{
			Name:   u.Name,
			Email:  u.Email,
			DOB:    u.DOB,
			Role:   u.Role,
			Status: u.Status,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"members": members,
	})
}

// EmployeeLimit reports the HR's package capacity next to the current
// employee count. It does not reject anything itself; enforcement
// happens at approval time.
func (h *UserHandler) EmployeeLimit(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	hrUser, err := h.Users.FindByEmail(ctx, email)
	if err != nil || hrUser.Role != models.RoleHR {
		if err != nil && err != store.ErrNotFound {
			log.Printf("hr lookup failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
			return
		}
		utils.RespondWithError(w, http.StatusNotFound, "HR user not found")
		return
	}

	totalAllowed, _ := strconv.Atoi(hrUser.PackageType)

	currentEmployees, err := h.Users.CountEmployees(ctx, email)
	if err != nil {
		log.Printf("employee count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"totalAllowed":     totalAllowed,
		"currentEmployees": currentEmployees,
	})
}

func (h *UserHandler) RequestedUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := h.Users.FindByStatus(ctx, models.StatusRequested)
	if err != nil {
		log.Printf("requested users lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch requested users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Requested users fetched successfully",
		"data":    users,
	})
}

// ApproveUser claims a pending user for the approving HR. Approval is
// exclusive: a user already holding the employee role reports a conflict
// with the HR that got there first. The HR's package capacity is
// enforced here when it parses to a positive limit.
func (h *UserHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id format")
		return
	}

	var payload struct {
		HREmail string `json:"hrEmail"`
	}
	if err := utils.ParseJSON(r, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	existing, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("approve user lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to approve user")
		return
	}

	if existing.Role == models.RoleEmployee {
		utils.RespondWithJSON(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"message": "User is already approved by another HR",
			"hrEmail": existing.HREmail,
		})
		return
	}

	if limitReached, err := h.capacityReached(ctx, payload.HREmail); err != nil {
		log.Printf("capacity check failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to approve user")
		return
	} else if limitReached {
		utils.RespondWithError(w, http.StatusConflict, "employee limit reached for this HR package")
		return
	}

	if err := h.Users.Approve(ctx, userID, payload.HREmail); err != nil {
		switch err {
		case store.ErrNotFound:
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		case store.ErrConflict:
			utils.RespondWithError(w, http.StatusConflict, "User is already approved by another HR")
		default:
			log.Printf("approve user failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to approve user")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User approved successfully",
	})
}

func (h *UserHandler) capacityReached(ctx context.Context, hrEmail string) (bool, error) {
	hrUser, err := h.Users.FindByEmail(ctx, hrEmail)
	if err != nil {
		if err == store.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	limit, _ := strconv.Atoi(hrUser.PackageType)
	if limit <= 0 {
		return false, nil
	}
	count, err := h.Users.CountEmployees(ctx, hrEmail)
	if err != nil {
		return false, err
	}
	return count >= int64(limit), nil
}

func (h *UserHandler) MyEmployees(w http.ResponseWriter, r *http.Request) {
	hrEmail := r.URL.Query().Get("hrEmail")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	employees, err := h.Users.FindByHREmail(ctx, hrEmail)
	if err != nil {
		log.Printf("my employees lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    employees,
	})
}

// CancelEmploy is unconditional and idempotent: role and hrEmail go back
// to empty whatever their current values are.
func (h *UserHandler) CancelEmploy(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Users.ClearEmployment(ctx, id); err != nil {
		log.Printf("cancel employ failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel employee.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Employee role removed successfully.",
	})
}
