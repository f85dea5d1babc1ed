// store/store.go
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mangemate/models"
)

// Sentinel errors translated to HTTP statuses at the handler boundary.
var (
	// ErrNotFound: the referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: the operation is incompatible with the document's
	// current state (already approved, already an employee).
	ErrConflict = errors.New("conflict")
	// ErrNotOwner: the caller does not own the targeted document.
	ErrNotOwner = errors.New("not owner")
)

// UserStore persists identity records.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByHREmail(ctx context.Context, hrEmail string) ([]models.User, error)
	FindByStatus(ctx context.Context, status string) ([]models.User, error)
	CountEmployees(ctx context.Context, hrEmail string) (int64, error)
	// Approve sets role=employee and hrEmail on the user, conditional on
	// the user not already holding the employee role. Returns ErrNotFound
	// if the user is absent, ErrConflict if another HR got there first.
	Approve(ctx context.Context, id primitive.ObjectID, hrEmail string) error
	// ClearEmployment resets role and hrEmail to empty. Idempotent.
	ClearEmployment(ctx context.Context, id primitive.ObjectID) error
}

// AssetStore persists inventory records.
type AssetStore interface {
	FindAll(ctx context.Context) ([]models.Asset, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	FindByHREmail(ctx context.Context, email string) ([]models.Asset, error)
	Insert(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error)
	// UpdateDetails replaces name, type and quantity. The returned bool
	// is false when the write matched but changed nothing.
	UpdateDetails(ctx context.Context, id primitive.ObjectID, name, assetsType string, quantity int) (bool, error)
	// Delete removes the asset only when hr.email matches ownerEmail.
	// Returns ErrNotFound if the asset is absent, ErrNotOwner if it
	// exists but belongs to a different HR.
	Delete(ctx context.Context, id primitive.ObjectID, ownerEmail string) error
	// SetQuantity writes to conditionally, predicated on the quantity
	// still being from. The returned bool is false when a concurrent
	// writer changed the quantity in between.
	SetQuantity(ctx context.Context, id primitive.ObjectID, from, to int) (bool, error)
}

// RequestStore persists asset requests and resolves their asset joins.
type RequestStore interface {
	Insert(ctx context.Context, req *models.Request) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error)
	// ListForEmploy returns the employee's requests inner-joined to their
	// assets; requests whose requestId resolves to no asset are excluded.
	ListForEmploy(ctx context.Context, email string) ([]models.RequestWithAsset, error)
	// ListForHR is the same join filtered by assetsOwner.
	ListForHR(ctx context.Context, email string) ([]models.RequestWithAsset, error)
	Approve(ctx context.Context, id primitive.ObjectID, approvalDate string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
