// models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployRef identifies the requesting employee, embedded as employ.email.
type EmployRef struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email"`
}

// Request joins an employee to an asset they asked for. RequestID holds
// the asset's ObjectID in hex; the asset-side join resolves it at read
// time. Once Status is "approved" the record is immutable.
type Request struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RequestID    string             `bson:"requestId" json:"requestId"`
	Employ       EmployRef          `bson:"employ" json:"employ"`
	AssetsOwner  string             `bson:"assetsOwner" json:"assetsOwner"`
	AssetsType   string             `bson:"assetsType,omitempty" json:"assetsType,omitempty"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	Date         time.Time          `bson:"date,omitempty" json:"date"`
	ApprovalDate string             `bson:"approvalDate,omitempty" json:"approvalDate,omitempty"`
}

// RequestWithAsset is a request decorated with fields joined from the
// referenced asset.
type RequestWithAsset struct {
	Request     `bson:",inline"`
	Name        string `bson:"name" json:"name"`
	CompanyName string `bson:"companyName" json:"companyName"`
}

const (
	RequestStatusRequested = "requested"
	RequestStatusApproved  = "approved"
)
