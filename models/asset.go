// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HRRef identifies the HR owning an asset, embedded as hr.email.
type HRRef struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email"`
}

type Asset struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AssetsName  string             `bson:"assetsName" json:"assetsName"`
	AssetsType  string             `bson:"assetsType" json:"assetsType"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	CompanyName string             `bson:"companyName,omitempty" json:"companyName,omitempty"`
	HR          HRRef              `bson:"hr" json:"hr"`
	Date        time.Time          `bson:"date,omitempty" json:"date,omitempty"`
}

// Quantity adjustment directions accepted by PATCH /assets/quantity/{id}.
const (
	QuantityIncrease = "increase"
	QuantityDecrease = "decrease"
)
