package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ProjectManager struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Contact    string             `json:"contact" bson:"contact"`
	Email      string             `json:"email" bson:"email"`
	Department string             `json:"department" bson:"department"`
}
