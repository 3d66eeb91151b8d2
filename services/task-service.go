package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zamtas/Zamtas-EMS/logging"
	"github.com/Zamtas/Zamtas-EMS/messaging"
	"github.com/Zamtas/Zamtas-EMS/models"
	"github.com/Zamtas/Zamtas-EMS/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidTask     = errors.New("invalid task")
)

// TaskStore is the persistence contract for tasks.
type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindAll(ctx context.Context) ([]models.Task, error)
	FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	FindByStatuses(ctx context.Context, statuses []models.TaskStatus) ([]models.Task, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Task, error)
	MarkDelayed(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// UserDirectory resolves assignee and team lead references.
type UserDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type ProjectStore interface {
	FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindManagerByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectManager, error)
}

// NotificationStore persists in-app notification records, independently of
// the task store.
type NotificationStore interface {
	CreateNotification(notification *models.Notification) error
}

// TaskService owns every task state transition and the notification side
// effects each transition triggers.
type TaskService struct {
	tasks         TaskStore
	users         UserDirectory
	projects      ProjectStore
	notifications NotificationStore
	sender        messaging.Sender
	phones        messaging.PhoneNormalizer
	portalURL     string
	now           func() time.Time
}

func NewTaskService(
	tasks TaskStore,
	users UserDirectory,
	projects ProjectStore,
	notifications NotificationStore,
	sender messaging.Sender,
	phones messaging.PhoneNormalizer,
	portalURL string,
) *TaskService {
	return &TaskService{
		tasks:         tasks,
		users:         users,
		projects:      projects,
		notifications: notifications,
		sender:        sender,
		phones:        phones,
		portalURL:     portalURL,
		now:           time.Now,
	}
}

// CreateTask persists a new task with status Assigned and notifies every
// resolvable assignee over WhatsApp. Notification failures never fail the
// creation.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := validateNewTask(task); err != nil {
		return nil, err
	}

	task.Status = models.StatusAssigned
	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.notifyAssignees(ctx, task.AssignedTo, func(user *models.User) string {
		return fmt.Sprintf("Hello %s!. A new task of %s has been assigned to you. Kindly login to your portal. %s",
			user.Name, task.Category, s.portalURL)
	})

	return task, nil
}

func validateNewTask(task *models.Task) error {
	if task.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if !models.ValidTaskCategory(task.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTask, task.Category)
	}
	if task.Project.IsZero() || task.ProjectManager.IsZero() || task.TeamLead.IsZero() {
		return fmt.Errorf("%w: project, projectManager and teamLead are required", ErrInvalidTask)
	}
	if task.StartDate.IsZero() || task.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidTask)
	}
	if _, err := time.Parse("15:04", task.EndTime); err != nil {
		return fmt.Errorf("%w: endTime must be in HH:mm format", ErrInvalidTask)
	}
	if len(task.AssignedTo) == 0 {
		return fmt.Errorf("%w: at least one assignee is required", ErrInvalidTask)
	}
	return nil
}

// UpdateTask applies a partial patch to the stored task, re-reads it with
// references resolved and fans out an "updated" notification to the
// assignees. The fan-out is best-effort and never rolls back the update.
func (s *TaskService) UpdateTask(ctx context.Context, taskID primitive.ObjectID, update models.TaskUpdate) (*models.PopulatedTask, error) {
	fields, err := patchFields(update)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.UpdateFields(ctx, taskID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.notifyAssignees(ctx, task.AssignedTo, func(user *models.User) string {
		return fmt.Sprintf("Hello %s! The task \"%s\" has been updated. Kindly review the changes on the portal: %s",
			user.Name, task.Title, s.portalURL)
	})

	return s.populateTask(ctx, task), nil
}

func patchFields(update models.TaskUpdate) (bson.M, error) {
	fields := bson.M{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Category != nil {
		if !models.ValidTaskCategory(*update.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidTask, *update.Category)
		}
		fields["category"] = *update.Category
	}
	if update.Project != nil {
		fields["project"] = *update.Project
	}
	if update.ProjectManager != nil {
		fields["projectManager"] = *update.ProjectManager
	}
	if update.StartDate != nil {
		fields["startDate"] = *update.StartDate
	}
	if update.EndDate != nil {
		fields["endDate"] = *update.EndDate
	}
	if update.EndTime != nil {
		if _, err := time.Parse("15:04", *update.EndTime); err != nil {
			return nil, fmt.Errorf("%w: endTime must be in HH:mm format", ErrInvalidTask)
		}
		fields["endTime"] = *update.EndTime
	}
	if update.AssignedTo != nil {
		if len(*update.AssignedTo) == 0 {
			return nil, fmt.Errorf("%w: at least one assignee is required", ErrInvalidTask)
		}
		fields["assignedTo"] = *update.AssignedTo
	}
	if update.TeamLead != nil {
		fields["teamLead"] = *update.TeamLead
	}
	if update.Status != nil {
		if !models.ValidTaskStatus(*update.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTask, *update.Status)
		}
		fields["status"] = *update.Status
	}
	if update.StartImage != nil {
		fields["startImage"] = *update.StartImage
	}
	if update.CompleteImage != nil {
		fields["completeImage"] = *update.CompleteImage
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidTask)
	}
	return fields, nil
}

// StartTask moves a task to In Progress and records the start image.
func (s *TaskService) StartTask(ctx context.Context, taskID primitive.ObjectID, startImage string) (*models.Task, error) {
	task, err := s.tasks.UpdateFields(ctx, taskID, bson.M{
		"status":     models.StatusInProgress,
		"startImage": startImage,
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return task, err
}

// CompleteTask moves a task to Done and records the completion image. Done
// is terminal for the sweep.
func (s *TaskService) CompleteTask(ctx context.Context, taskID primitive.ObjectID, completeImage string) (*models.Task, error) {
	task, err := s.tasks.UpdateFields(ctx, taskID, bson.M{
		"status":        models.StatusDone,
		"completeImage": completeImage,
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return task, err
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.PopulatedTask, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.populateTasks(ctx, tasks), nil
}

func (s *TaskService) GetUserTasks(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedTask, error) {
	tasks, err := s.tasks.FindByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populateTasks(ctx, tasks), nil
}

func (s *TaskService) GetProjectDetails(ctx context.Context, projectID primitive.ObjectID) (*models.PopulatedProject, error) {
	project, err := s.projects.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	populated := &models.PopulatedProject{
		ID:            project.ID,
		ProjectName:   project.ProjectName,
		ProjectID:     project.ProjectID,
		ClientContact: project.ClientContact,
		StartDate:     project.StartDate,
		EndDate:       project.EndDate,
		Location:      project.Location,
	}
	manager, err := s.projects.FindManagerByID(ctx, project.ProjectManager)
	if err != nil {
		logging.Logger.Warnf("Event ID: POPULATE_MANAGER_FAILED, Description: Failed to resolve manager %s for project %s: %v", project.ProjectManager.Hex(), project.ID.Hex(), err)
	} else {
		populated.ProjectManager = manager
	}
	return populated, nil
}

// CheckDelayedTasks is the periodic sweep. It fetches every task still
// Assigned or In Progress, transitions those past their deadline to Delayed
// with a conditional write, and fans out one in-app notification plus one
// WhatsApp message per assignee. Each task is processed in isolation so one
// bad record never aborts the rest of the pass.
func (s *TaskService) CheckDelayedTasks(ctx context.Context) {
	tasks, err := s.tasks.FindByStatuses(ctx, []models.TaskStatus{models.StatusAssigned, models.StatusInProgress})
	if err != nil {
		logging.Logger.Errorf("Event ID: SWEEP_FETCH_FAILED, Description: Failed to fetch tasks for delay check: %v", err)
		return
	}

	for i := range tasks {
		s.sweepTask(ctx, &tasks[i])
	}
}

func (s *TaskService) sweepTask(ctx context.Context, task *models.Task) {
	deadline, err := task.Deadline()
	if err != nil {
		logging.Logger.Warnf("Event ID: SWEEP_BAD_DEADLINE, Description: Skipping task %s: %v", task.ID.Hex(), err)
		return
	}

	if !s.now().After(deadline) {
		return
	}

	changed, err := s.tasks.MarkDelayed(ctx, task.ID)
	if err != nil {
		logging.Logger.Errorf("Event ID: SWEEP_UPDATE_FAILED, Description: Failed to mark task %s as delayed: %v", task.ID.Hex(), err)
		return
	}
	if !changed {
		// Lost the race against an explicit status update, nothing to announce.
		return
	}

	logging.Logger.Infof("Event ID: TASK_DELAYED, Description: Task %s (%q) marked as delayed.", task.ID.Hex(), task.Title)

	for _, userID := range task.AssignedTo {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			logging.Logger.Warnf("Event ID: SWEEP_USER_LOOKUP_FAILED, Description: Failed to resolve assignee %s of task %s: %v", userID.Hex(), task.ID.Hex(), err)
			continue
		}

		notification := &models.Notification{
			UserID:    user.ID.Hex(),
			Message:   fmt.Sprintf("Task \"%s\" has been marked as delayed.", task.Title),
			CreatedAt: s.now(),
			IsRead:    false,
		}
		if err := s.notifications.CreateNotification(notification); err != nil {
			logging.Logger.Errorf("Event ID: SWEEP_NOTIFICATION_FAILED, Description: Failed to store delay notification for user %s: %v", user.ID.Hex(), err)
		}

		body := fmt.Sprintf("Hello %s, the task \"%s\" assigned to you has been marked as delayed. Please check your portal for details.",
			user.Name, task.Title)
		s.dispatchMessage(ctx, user, body)
	}
}

// notifyAssignees performs the per-assignee WhatsApp fan-out. Every failure
// is logged and swallowed: a missing user, a malformed number or a gateway
// error must not affect the triggering operation or the other recipients.
func (s *TaskService) notifyAssignees(ctx context.Context, assignees []primitive.ObjectID, body func(*models.User) string) {
	for _, userID := range assignees {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			logging.Logger.Warnf("Event ID: NOTIFY_USER_LOOKUP_FAILED, Description: Failed to resolve assignee %s: %v", userID.Hex(), err)
			continue
		}
		s.dispatchMessage(ctx, user, body(user))
	}
}

func (s *TaskService) dispatchMessage(ctx context.Context, user *models.User, body string) {
	mobileNo, err := s.phones.Normalize(user.MobileNo)
	if err != nil {
		logging.Logger.Warnf("Event ID: NOTIFY_BAD_NUMBER, Description: Skipping WhatsApp message for user %s: %v", user.ID.Hex(), err)
		return
	}

	if err := s.sender.Send(ctx, mobileNo, body); err != nil {
		logging.Logger.Errorf("Event ID: NOTIFY_DISPATCH_FAILED, Description: Failed to send WhatsApp message to %s: %v", mobileNo, err)
	}
}

func (s *TaskService) populateTasks(ctx context.Context, tasks []models.Task) []models.PopulatedTask {
	populated := make([]models.PopulatedTask, 0, len(tasks))
	for i := range tasks {
		populated = append(populated, *s.populateTask(ctx, &tasks[i]))
	}
	return populated
}

// populateTask resolves the task's references. A failed lookup leaves the
// corresponding field empty rather than failing the whole response.
func (s *TaskService) populateTask(ctx context.Context, task *models.Task) *models.PopulatedTask {
	populated := &models.PopulatedTask{
		ID:            task.ID,
		Title:         task.Title,
		Category:      task.Category,
		StartDate:     task.StartDate,
		EndDate:       task.EndDate,
		EndTime:       task.EndTime,
		Status:        task.Status,
		StartImage:    task.StartImage,
		CompleteImage: task.CompleteImage,
		AssignedTo:    make([]models.User, 0, len(task.AssignedTo)),
	}

	if project, err := s.projects.FindProjectByID(ctx, task.Project); err == nil {
		populated.Project = project
	} else {
		logging.Logger.Warnf("Event ID: POPULATE_PROJECT_FAILED, Description: Failed to resolve project %s for task %s: %v", task.Project.Hex(), task.ID.Hex(), err)
	}

	if manager, err := s.projects.FindManagerByID(ctx, task.ProjectManager); err == nil {
		populated.ProjectManager = manager
	} else {
		logging.Logger.Warnf("Event ID: POPULATE_MANAGER_FAILED, Description: Failed to resolve manager %s for task %s: %v", task.ProjectManager.Hex(), task.ID.Hex(), err)
	}

	for _, userID := range task.AssignedTo {
		if user, err := s.users.FindByID(ctx, userID); err == nil {
			populated.AssignedTo = append(populated.AssignedTo, *user)
		}
	}

	if lead, err := s.users.FindByID(ctx, task.TeamLead); err == nil {
		populated.TeamLead = lead
	}

	return populated
}
