// models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. Role is empty until an HR approves the
// user as an employee; HREmail is the back-reference to that HR.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password,omitempty" json:"-"`
	DOB         string             `bson:"dob,omitempty" json:"dob,omitempty"`
	Role        string             `bson:"role,omitempty" json:"role,omitempty"`
	HREmail     string             `bson:"hrEmail,omitempty" json:"hrEmail,omitempty"`
	PackageType string             `bson:"packageType,omitempty" json:"packageType,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	CompanyName string             `bson:"companyName,omitempty" json:"companyName,omitempty"`
	Timestamp   int64              `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// TeamMember is the projection returned by the team roster endpoint.
type TeamMember struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	DOB    string `json:"dob"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"

	StatusRequested = "requested"
)
