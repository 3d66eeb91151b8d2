package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectName    string             `json:"projectName" bson:"projectName"`
	ProjectID      string             `json:"projectId" bson:"projectId"`
	ClientID       primitive.ObjectID `json:"clientId" bson:"clientId"`
	ClientContact  string             `json:"clientContact" bson:"clientContact"`
	StartDate      time.Time          `json:"startDate" bson:"startDate"`
	EndDate        time.Time          `json:"endDate" bson:"endDate"`
	ProjectManager primitive.ObjectID `json:"projectManager" bson:"projectManager"`
	Location       string             `json:"location" bson:"location"`
	ProductID      primitive.ObjectID `json:"productId,omitempty" bson:"productId,omitempty"`
	Quantity       int                `json:"quantity,omitempty" bson:"quantity,omitempty"`
}

// PopulatedProject is a project with its manager reference resolved.
type PopulatedProject struct {
	ID             primitive.ObjectID `json:"id"`
	ProjectName    string             `json:"projectName"`
	ProjectID      string             `json:"projectId"`
	ClientContact  string             `json:"clientContact"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	ProjectManager *ProjectManager    `json:"projectManager"`
	Location       string             `json:"location"`
}
