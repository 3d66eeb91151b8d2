package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Zamtas/Zamtas-EMS/logging"
	"github.com/Zamtas/Zamtas-EMS/middleware"
	"github.com/Zamtas/Zamtas-EMS/models"
	"github.com/Zamtas/Zamtas-EMS/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func checkRole(r *http.Request, allowedRoles []string) error {
	userRole := r.Header.Get("Role")
	if userRole == "" {
		return fmt.Errorf("role is missing in request header")
	}

	for _, role := range allowedRoles {
		if role == userRole {
			return nil
		}
	}
	return fmt.Errorf("access forbidden: user does not have the required role")
}

func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"admin", "manager"}); err != nil {
		respondError(w, http.StatusForbidden, "Access forbidden: insufficient permissions")
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := h.service.CreateTask(r.Context(), &task)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTask) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.Logger.Errorf("Event ID: TASK_CREATE_FAILED, Description: Error adding task: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusCreated, "Task added successfully", created)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID, err := primitive.ObjectIDFromHex(vars["taskId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var update models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := h.service.UpdateTask(r.Context(), taskID, update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			respondError(w, http.StatusNotFound, "Task not found")
		case errors.Is(err, services.ErrInvalidTask):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			logging.Logger.Errorf("Event ID: TASK_UPDATE_FAILED, Description: Error updating task %s: %v", taskID.Hex(), err)
			respondError(w, http.StatusInternalServerError, "Server Error")
		}
		return
	}

	respondJSON(w, http.StatusOK, "Task updated successfully", updated)
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: TASKS_FETCH_FAILED, Description: Error fetching tasks: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, "Tasks fetched successfully", tasks)
}

// GetUserTasks lists the tasks assigned to the authenticated user.
func (h *TaskHandler) GetUserTasks(w http.ResponseWriter, r *http.Request) {
	userIDHex, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	tasks, err := h.service.GetUserTasks(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	respondJSON(w, http.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *TaskHandler) GetProjectDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := primitive.ObjectIDFromHex(vars["projectId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	project, err := h.service.GetProjectDetails(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "Project not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, "Project details fetched successfully", project)
}

type taskTransitionRequest struct {
	TaskID        string `json:"taskId"`
	StartImage    string `json:"startImage,omitempty"`
	CompleteImage string `json:"completeImage,omitempty"`
}

func (h *TaskHandler) StartTask(w http.ResponseWriter, r *http.Request) {
	var req taskTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.StartImage == "" {
		respondError(w, http.StatusBadRequest, "Start image is required")
		return
	}
	taskID, err := primitive.ObjectIDFromHex(req.TaskID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := h.service.StartTask(r.Context(), taskID, req.StartImage)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "Task not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, "Task started successfully", task)
}

func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	var req taskTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.CompleteImage == "" {
		respondError(w, http.StatusBadRequest, "Completion image is required")
		return
	}
	taskID, err := primitive.ObjectIDFromHex(req.TaskID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := h.service.CompleteTask(r.Context(), taskID, req.CompleteImage)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "Task not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, "Task completed successfully", task)
}
