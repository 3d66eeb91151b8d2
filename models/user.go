package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"-" bson:"password"`
	Role           string             `json:"role" bson:"role"`
	Designation    string             `json:"designation" bson:"designation"`
	Department     string             `json:"department" bson:"department"`
	DOB            time.Time          `json:"dob,omitempty" bson:"dob,omitempty"`
	MobileNo       string             `json:"mobileNo,omitempty" bson:"mobileNo,omitempty"`
	Address        string             `json:"address,omitempty" bson:"address,omitempty"`
	CNIC           string             `json:"cnic,omitempty" bson:"cnic,omitempty"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
}
