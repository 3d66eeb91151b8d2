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

// ErrNotFound is returned when a lookup does not match any document.
var ErrNotFound = errors.New("document not found")

type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		collection: db.Collection("tasks"),
	}
}

func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to create task: %v", err)
	}

	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}
	return &task, nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	return r.findTasks(ctx, bson.M{})
}

func (r *TaskRepository) FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return r.findTasks(ctx, bson.M{"assignedTo": userID})
}

func (r *TaskRepository) FindByStatuses(ctx context.Context, statuses []models.TaskStatus) ([]models.Task, error) {
	return r.findTasks(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

func (r *TaskRepository) findTasks(ctx context.Context, filter bson.M) ([]models.Task, error) {
	var tasks []models.Task
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %v", err)
		}
		tasks = append(tasks, task)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return tasks, nil
}

// UpdateFields applies a partial $set update and returns the updated task.
func (r *TaskRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Task, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// MarkDelayed transitions a task to Delayed only if it is still Assigned or
// In Progress at write time, so a concurrent Done transition is never
// clobbered. It reports whether the document was actually modified.
func (r *TaskRepository) MarkDelayed(ctx context.Context, id primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": []models.TaskStatus{models.StatusAssigned, models.StatusInProgress}},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusDelayed}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark task as delayed: %v", err)
	}
	return result.ModifiedCount > 0, nil
}
