package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mangemate/models"
	"mangemate/store"
)

// In-memory stores reproducing the documented store contracts, so the
// handlers can be exercised without a running MongoDB.

type fakeUserStore struct {
	users   map[primitive.ObjectID]*models.User
	inserts int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) add(u models.User) primitive.ObjectID {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID] = &u
	return u.ID
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	f.inserts++
	return f.add(*user), nil
}

func (f *fakeUserStore) FindAll(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) FindByHREmail(_ context.Context, hrEmail string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		if u.HREmail == hrEmail {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) FindByStatus(_ context.Context, status string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		if u.Status == status {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) CountEmployees(_ context.Context, hrEmail string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.HREmail == hrEmail && u.Role == models.RoleEmployee {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserStore) Approve(_ context.Context, id primitive.ObjectID, hrEmail string) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if u.Role == models.RoleEmployee {
		return store.ErrConflict
	}
	u.Role = models.RoleEmployee
	u.HREmail = hrEmail
	return nil
}

func (f *fakeUserStore) ClearEmployment(_ context.Context, id primitive.ObjectID) error {
	if u, ok := f.users[id]; ok {
		u.Role = ""
		u.HREmail = ""
	}
	return nil
}

type fakeAssetStore struct {
	assets map[primitive.ObjectID]*models.Asset
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{assets: make(map[primitive.ObjectID]*models.Asset)}
}

func (f *fakeAssetStore) add(a models.Asset) primitive.ObjectID {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.assets[a.ID] = &a
	return a.ID
}

func (f *fakeAssetStore) FindAll(context.Context) ([]models.Asset, error) {
	out := []models.Asset{}
	for _, a := range f.assets {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssetStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Asset, error) {
	if a, ok := f.assets[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeAssetStore) FindByHREmail(_ context.Context, email string) ([]models.Asset, error) {
	out := []models.Asset{}
	for _, a := range f.assets {
		if a.HR.Email == email {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssetStore) Insert(_ context.Context, asset *models.Asset) (primitive.ObjectID, error) {
	return f.add(*asset), nil
}

func (f *fakeAssetStore) UpdateDetails(_ context.Context, id primitive.ObjectID, name, assetsType string, quantity int) (bool, error) {
	a, ok := f.assets[id]
	if !ok {
		return false, store.ErrNotFound
	}
	if a.AssetsName == name && a.AssetsType == assetsType && a.Quantity == quantity {
		return false, nil
	}
	a.AssetsName = name
	a.AssetsType = assetsType
	a.Quantity = quantity
	return true, nil
}

func (f *fakeAssetStore) Delete(_ context.Context, id primitive.ObjectID, ownerEmail string) error {
	a, ok := f.assets[id]
	if !ok {
		return store.ErrNotFound
	}
	if a.HR.Email != ownerEmail {
		return store.ErrNotOwner
	}
	delete(f.assets, id)
	return nil
}

func (f *fakeAssetStore) SetQuantity(_ context.Context, id primitive.ObjectID, from, to int) (bool, error) {
	a, ok := f.assets[id]
	if !ok || a.Quantity != from {
		return false, nil
	}
	a.Quantity = to
	return true, nil
}

type fakeRequestStore struct {
	requests map[primitive.ObjectID]*models.Request
	assets   *fakeAssetStore
}

func newFakeRequestStore(assets *fakeAssetStore) *fakeRequestStore {
	return &fakeRequestStore{
		requests: make(map[primitive.ObjectID]*models.Request),
		assets:   assets,
	}
}

func (f *fakeRequestStore) add(r models.Request) primitive.ObjectID {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.requests[r.ID] = &r
	return r.ID
}

func (f *fakeRequestStore) Insert(_ context.Context, req *models.Request) (primitive.ObjectID, error) {
	return f.add(*req), nil
}

func (f *fakeRequestStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Request, error) {
	if r, ok := f.requests[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

// joined reproduces the aggregation's inner-join semantics: requests
// whose requestId does not resolve to an existing asset are excluded.
func (f *fakeRequestStore) joined(match func(*models.Request) bool) []models.RequestWithAsset {
	out := []models.RequestWithAsset{}
	for _, r := range f.requests {
		if !match(r) {
			continue
		}
		assetID, err := primitive.ObjectIDFromHex(r.RequestID)
		if err != nil {
			continue
		}
		asset, ok := f.assets.assets[assetID]
		if !ok {
			continue
		}
		out = append(out, models.RequestWithAsset{
			Request:     *r,
			Name:        asset.AssetsName,
			CompanyName: asset.CompanyName,
		})
	}
	return out
}

func (f *fakeRequestStore) ListForEmploy(_ context.Context, email string) ([]models.RequestWithAsset, error) {
	return f.joined(func(r *models.Request) bool { return r.Employ.Email == email }), nil
}

func (f *fakeRequestStore) ListForHR(_ context.Context, email string) ([]models.RequestWithAsset, error) {
	return f.joined(func(r *models.Request) bool { return r.AssetsOwner == email }), nil
}

func (f *fakeRequestStore) Approve(_ context.Context, id primitive.ObjectID, approvalDate string) error {
	r, ok := f.requests[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Status = models.RequestStatusApproved
	r.ApprovalDate = approvalDate
	return nil
}

func (f *fakeRequestStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.requests[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.requests, id)
	return nil
}
