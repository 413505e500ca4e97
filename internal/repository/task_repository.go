package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskmanager/internal/model"
)

// Viewer identifies who is asking. Non-admins only see tasks whose team
// they belong to.
type Viewer struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// TaskFilter narrows task listings. Search is a case-insensitive substring
// match against title, stage or priority.
type TaskFilter struct {
	Viewer    Viewer
	Stage     string
	IsTrashed bool
	Search    string
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task, notice *model.Notice) error
	CreateCopy(ctx context.Context, task *model.Task, notice *model.Notice) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetDetailed(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	UpdateStage(ctx context.Context, id uuid.UUID, stage string) error
	AddSubTask(ctx context.Context, taskID uuid.UUID, subTask *model.SubTask) error
	SetSubTaskCompleted(ctx context.Context, taskID, subTaskID uuid.UUID, completed bool) error
	AddActivity(ctx context.Context, taskID uuid.UUID, activity *model.Activity) error
	Trash(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteTrashed(ctx context.Context) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) error
	RestoreTrashed(ctx context.Context) (int64, error)
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a new task together with its notice and appends the task
// to every team member's task list. All writes share one transaction.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task, notice *model.Notice) error {
	return r.create(ctx, task, notice, true)
}

// CreateCopy persists a duplicated task and its notice. Team members' task
// lists are left as they are.
func (r *TaskRepository) CreateCopy(ctx context.Context, task *model.Task, notice *model.Notice) error {
	return r.create(ctx, task, notice, false)
}

func (r *TaskRepository) create(ctx context.Context, task *model.Task, notice *model.Notice, assign bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Team rows are written by hand so that referenced users are never upserted
		if err := tx.Omit("Team").Create(task).Error; err != nil {
			return err
		}

		members := task.TeamIDs()
		if err := linkMembers(tx, "task_team", "task_id", task.ID, members); err != nil {
			return err
		}

		if notice != nil {
			if err := createNotice(tx, notice); err != nil {
				return err
			}
		}

		if !assign {
			return nil
		}
		for _, userID := range members {
			if err := tx.Exec(
				"INSERT INTO user_tasks (user_id, task_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				userID, task.ID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a task with its team ids and sub-tasks
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Team", selectColumns("id")).
		Preload("SubTasks", orderByCreation).
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetDetailed retrieves a task with its team, sub-tasks and activity authors resolved
func (r *TaskRepository) GetDetailed(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Team", selectColumns("id", "name", "title", "role", "email")).
		Preload("SubTasks", orderByCreation).
		Preload("Activities", orderByCreation).
		Preload("Activities.By", selectColumns("id", "name")).
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// List returns the tasks matching filter, newest first
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).
		Preload("Team", selectColumns("id", "name", "title", "email")).
		Preload("SubTasks", orderByCreation).
		Scopes(visibleTo(filter.Viewer)).
		Where("is_trashed = ?", filter.IsTrashed)

	if filter.Stage != "" {
		q = q.Where("stage = ?", model.NormalizeStage(filter.Stage))
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		q = q.Where("(title ILIKE ? OR stage ILIKE ? OR priority ILIKE ?)", pattern, pattern, pattern)
	}

	var tasks []model.Task
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update replaces the editable fields and the team of an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Task{ID: task.ID}).
			Select("title", "date", "priority", "assets", "stage", "links", "description").
			Updates(task)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}

		if err := tx.Exec("DELETE FROM task_team WHERE task_id = ?", task.ID).Error; err != nil {
			return err
		}
		return linkMembers(tx, "task_team", "task_id", task.ID, task.TeamIDs())
	})
}

// UpdateStage moves a task to stage. Any stage may follow any other.
func (r *TaskRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage string) error {
	return r.updateColumn(ctx, id, "stage", model.NormalizeStage(stage))
}

// AddSubTask appends a sub-task to an existing task
func (r *TaskRepository) AddSubTask(ctx context.Context, taskID uuid.UUID, subTask *model.SubTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := taskExists(tx, taskID); err != nil {
			return err
		}
		subTask.TaskID = taskID
		return tx.Create(subTask).Error
	})
}

// SetSubTaskCompleted flips the completion flag of the sub-task identified by
// (taskID, subTaskID). A missing sub-task is not an error.
func (r *TaskRepository) SetSubTaskCompleted(ctx context.Context, taskID, subTaskID uuid.UUID, completed bool) error {
	return r.db.WithContext(ctx).Model(&model.SubTask{}).
		Where("id = ? AND task_id = ?", subTaskID, taskID).
		Update("is_completed", completed).Error
}

// AddActivity appends an entry to the task's activity log
func (r *TaskRepository) AddActivity(ctx context.Context, taskID uuid.UUID, activity *model.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := taskExists(tx, taskID); err != nil {
			return err
		}
		activity.TaskID = taskID
		return tx.Omit("By").Create(activity).Error
	})
}

// Trash soft-deletes a task. Trashing twice is harmless.
func (r *TaskRepository) Trash(ctx context.Context, id uuid.UUID) error {
	return r.updateColumn(ctx, id, "is_trashed", true)
}

// Restore takes a task out of the trash
func (r *TaskRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.updateColumn(ctx, id, "is_trashed", false)
}

// RestoreTrashed takes every trashed task out of the trash
func (r *TaskRepository) RestoreTrashed(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("is_trashed = ?", true).
		Update("is_trashed", false)
	return result.RowsAffected, result.Error
}

// Delete removes a task permanently
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTrashed permanently removes every trashed task in one statement
func (r *TaskRepository) DeleteTrashed(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("is_trashed = ?", true).Delete(&model.Task{})
	return result.RowsAffected, result.Error
}

func (r *TaskRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// visibleTo restricts a task query to what the viewer may see
func visibleTo(v Viewer) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if v.IsAdmin {
			return db
		}
		return db.Where(
			"EXISTS (SELECT 1 FROM task_team WHERE task_team.task_id = tasks.id AND task_team.user_id = ?)",
			v.UserID,
		)
	}
}

func taskExists(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&model.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// linkMembers writes (owner, user) rows into a membership join table
func linkMembers(tx *gorm.DB, table, ownerColumn string, ownerID uuid.UUID, userIDs []uuid.UUID) error {
	for _, userID := range userIDs {
		if err := tx.Exec(
			"INSERT INTO "+table+" ("+ownerColumn+", user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			ownerID, userID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func selectColumns(columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(columns)
	}
}

func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
