package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zamtas/Zamtas-EMS/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectRepository struct {
	projectsCollection *mongo.Collection
	managersCollection *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{
		projectsCollection: db.Collection("projects"),
		managersCollection: db.Collection("projectmanagers"),
	}
}

func (r *ProjectRepository) FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.projectsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve project: %v", err)
	}
	return &project, nil
}

func (r *ProjectRepository) FindManagerByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectManager, error) {
	var manager models.ProjectManager
	err := r.managersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&manager)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve project manager: %v", err)
	}
	return &manager, nil
}
