package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"taskmanager/internal/dashboard"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Delete/restore actions accepted by DeleteRestore
const (
	ActionDelete     = "delete"
	ActionDeleteAll  = "deleteAll"
	ActionRestore    = "restore"
	ActionRestoreAll = "restoreAll"
)

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
	userRepo repository.UserRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface, userRepo repository.UserRepositoryInterface) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// TaskRequest is the body of task creation and full updates. Links is a
// comma-separated list.
type TaskRequest struct {
	Title       string      `json:"title" binding:"required"`
	Team        []uuid.UUID `json:"team"`
	Stage       string      `json:"stage" binding:"required,stage"`
	Date        string      `json:"date" binding:"required"`
	Priority    string      `json:"priority" binding:"required,priority"`
	Assets      []string    `json:"assets"`
	Links       string      `json:"links"`
	Description string      `json:"description"`
}

type StageRequest struct {
	Stage string `json:"stage" binding:"required,stage"`
}

type SubTaskRequest struct {
	Title string `json:"title" binding:"required"`
	Tag   string `json:"tag"`
	Date  string `json:"date"`
}

type SubTaskStatusRequest struct {
	Status *bool `json:"status" binding:"required"`
}

type ActivityRequest struct {
	Type     string `json:"type" binding:"required,activitytype"`
	Activity string `json:"activity"`
}

func (req TaskRequest) fields() (model.TaskFields, bool) {
	date, ok := parseDate(req.Date)
	if !ok {
		return model.TaskFields{}, false
	}
	return model.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Priority:    req.Priority,
		Stage:       req.Stage,
		Assets:      req.Assets,
		Links:       req.Links,
		Team:        req.Team,
	}, true
}

// Create godoc
// @Summary  Create a task, notify its team and add it to their task lists
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Param    task body TaskRequest true "Task"
// @Success  201
// @Router   /api/task/create [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	fields, ok := req.fields()
	if !ok {
		respondError(c, http.StatusBadRequest, "date is not a valid date")
		return
	}

	task := model.NewTask(fields, actor.UserID)
	notice := model.NewNotice(task.Team, task.Activities[0].Activity, task.ID)

	if err := h.taskRepo.Create(c.Request.Context(), task, notice); err != nil {
		internalError(c, "create task", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "task": task, "message": "Task created successfully."})
}

// Duplicate godoc
// @Summary  Duplicate a task
// @Tags     Tasks
// @Param    id path string true "Task ID"
// @Success  201
// @Router   /api/task/duplicate/{id} [post]
func (h *TaskHandler) Duplicate(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	source, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
		} else {
			internalError(c, "load task", err)
		}
		return
	}

	dup := source.Duplicate(actor.UserID)
	notice := model.NewNotice(dup.Team, model.DuplicationText(source.Priority), dup.ID)

	if err := h.taskRepo.CreateCopy(c.Request.Context(), dup, notice); err != nil {
		internalError(c, "duplicate task", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "task": dup, "message": "Task duplicated successfully."})
}

// List godoc
// @Summary  List tasks visible to the caller
// @Tags     Tasks
// @Param    stage query string false "Stage"
// @Param    isTrashed query bool false "Trashed tasks only"
// @Param    search query string false "Search in title, stage and priority"
// @Success  200
// @Router   /api/task [get]
func (h *TaskHandler) List(c *gin.Context) {
	viewer, ok := caller(c)
	if !ok {
		return
	}

	isTrashed, _ := strconv.ParseBool(c.Query("isTrashed"))
	tasks, err := h.taskRepo.List(c.Request.Context(), repository.TaskFilter{
		Viewer:    viewer,
		Stage:     c.Query("stage"),
		IsTrashed: isTrashed,
		Search:    c.Query("search"),
	})
	if err != nil {
		internalError(c, "list tasks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "tasks": tasks})
}

// GetByID godoc
// @Summary  Get a task with its team and activity authors
// @Tags     Tasks
// @Param    id path string true "Task ID"
// @Success  200
// @Router   /api/task/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetDetailed(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
		} else {
			internalError(c, "get task", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "task": task})
}

// Update godoc
// @Summary  Replace a task's fields and team
// @Tags     Tasks
// @Param    id path string true "Task ID"
// @Param    task body TaskRequest true "Task"
// @Success  200
// @Router   /api/task/update/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	fields, ok := req.fields()
	if !ok {
		respondError(c, http.StatusBadRequest, "date is not a valid date")
		return
	}

	task := &model.Task{ID: taskID}
	task.Apply(fields)

	h.write(c, "update task", h.taskRepo.Update(c.Request.Context(), task), "Task updated successfully.")
}

// UpdateStage godoc
// @Summary  Move a task to another stage
// @Tags     Tasks
// @Param    id path string true "Task ID"
// @Param    stage body StageRequest true "Stage"
// @Success  200
// @Router   /api/task/change-stage/{id} [put]
func (h *TaskHandler) UpdateStage(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	err := h.taskRepo.UpdateStage(c.Request.Context(), taskID, req.Stage)
	h.write(c, "change task stage", err, "Task stage changed successfully.")
}

// CreateSubTask godoc
// @Summary  Add a sub-task
// @Tags     Tasks
// @Param    id path string true "Task ID"
// @Param    subTask body SubTaskRequest true "Sub-task"
// @Success  200
// @Router   /api/task/create-subtask/{id} [put]
func (h *TaskHandler) CreateSubTask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	var date time.Time
	if req.Date != "" {
		parsed, ok := parseDate(req.Date)
		if !ok {
			respondError(c, http.StatusBadRequest, "date is not a valid date")
			return
		}
		date = parsed
	}

	task := &model.Task{ID: taskID}
	subTask := task.AddSubTask(req.Title, req.Tag, date)

	err := h.taskRepo.AddSubTask(c.Request.Context(), taskID, subTask)
	h.write(c, "add sub-task", err, "SubTask added successfully.")
}

// UpdateSubTaskStatus godoc
// @Summary  Mark a sub-task completed or uncompleted
// @Tags     Tasks
// @Param    taskId path string true "Task ID"
// @Param    subTaskId path string true "Sub-task ID"
// @Param    status body SubTaskStatusRequest true "Status"
// @Success  200
// @Router   /api/task/change-status/{taskId}/{subTaskId} [put]
func (h *TaskHandler) UpdateSubTaskStatus(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	subTaskID, ok := pathID(c, "subTaskId")
	if !ok {
		return
	}

	var req SubTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	// An unknown sub-task id matches nothing and still reports success
	if err := h.taskRepo.SetSubTaskCompleted(c.Request.Context(), taskID, subTaskID, *req.Status); err != nil {
		internalError(c, "change sub-task status", err)
		return
	}

	if *req.Status {
		respondOK(c, "Task has been marked completed")
	} else {
		respondOK(c, "Task has been marked uncompleted")
	}
}

// PostActivity godoc
// @Summary  Append an entry to a task's activity log
// @Tags     Tasks
// @Param    id path string true "Task ID"
// @Param    activity body ActivityRequest true "Activity"
// @Success  200
// @Router   /api/task/activity/{id} [post]
func (h *TaskHandler) PostActivity(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	activity := model.NewActivity(req.Type, req.Activity, actor.UserID)
	err := h.taskRepo.AddActivity(c.Request.Context(), taskID, activity)
	h.write(c, "post activity", err, "Activity posted successfully.")
}

// Trash godoc
// @Summary  Move a task to the trash
// @Tags     Tasks
// @Param    id path string true "Task ID"
// @Success  200
// @Router   /api/task/{id} [put]
func (h *TaskHandler) Trash(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.taskRepo.Trash(c.Request.Context(), taskID)
	h.write(c, "trash task", err, "Task trashed successfully.")
}

// DeleteRestore godoc
// @Summary  Delete or restore one or all trashed tasks
// @Tags     Tasks
// @Param    id path string false "Task ID, required for delete and restore"
// @Param    actionType query string true "delete, deleteAll, restore or restoreAll"
// @Success  200
// @Router   /api/task/delete-restore/{id} [delete]
func (h *TaskHandler) DeleteRestore(c *gin.Context) {
	ctx := c.Request.Context()
	actionType := c.Query("actionType")

	var err error
	switch actionType {
	case ActionDeleteAll:
		_, err = h.taskRepo.DeleteTrashed(ctx)
	case ActionRestoreAll:
		_, err = h.taskRepo.RestoreTrashed(ctx)
	case ActionDelete, ActionRestore:
		taskID, ok := pathID(c, "id")
		if !ok {
			return
		}
		if actionType == ActionDelete {
			err = h.taskRepo.Delete(ctx, taskID)
		} else {
			err = h.taskRepo.Restore(ctx, taskID)
		}
	default:
		// Unknown actions are rejected with 400 rather than ignored
		err = repository.ErrUnknownAction
	}

	h.write(c, actionType+" task", err, "Operation performed successfully.")
}

// Dashboard godoc
// @Summary  Task statistics for the caller
// @Tags     Tasks
// @Success  200
// @Router   /api/task/dashboard [get]
func (h *TaskHandler) Dashboard(c *gin.Context) {
	viewer, ok := caller(c)
	if !ok {
		return
	}

	tasks, err := h.taskRepo.List(c.Request.Context(), repository.TaskFilter{Viewer: viewer})
	if err != nil {
		internalError(c, "load dashboard tasks", err)
		return
	}

	var users []model.User
	if viewer.IsAdmin {
		users, err = h.userRepo.ListRecentActive(c.Request.Context(), dashboard.RecentUsers)
		if err != nil {
			internalError(c, "load dashboard users", err)
			return
		}
	}

	summary := dashboard.Build(tasks, users, viewer.IsAdmin)
	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"totalTasks": summary.TotalTasks,
		"last10Task": summary.Last10Task,
		"users":      summary.Users,
		"tasks":      summary.TasksByStage,
		"graphData":  summary.GraphData,
		"message":    "Successfully.",
	})
}

// write answers a single-write operation, mapping repository errors to statuses
func (h *TaskHandler) write(c *gin.Context, op string, err error, message string) {
	switch {
	case err == nil:
		respondOK(c, message)
	case errors.Is(err, repository.ErrTaskNotFound):
		respondError(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, repository.ErrUnknownAction):
		respondError(c, http.StatusBadRequest, "Unknown action type")
	default:
		internalError(c, op, err)
	}
}
