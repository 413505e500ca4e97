package handler_test

import (
	"context"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTaskRepository struct {
	mock.Mock
}

var _ repository.TaskRepositoryInterface = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task, notice *model.Notice) error {
	return m.Called(ctx, task, notice).Error(0)
}

func (m *MockTaskRepository) CreateCopy(ctx context.Context, task *model.Task, notice *model.Notice) error {
	return m.Called(ctx, task, notice).Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetDetailed(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage string) error {
	return m.Called(ctx, id, stage).Error(0)
}

func (m *MockTaskRepository) AddSubTask(ctx context.Context, taskID uuid.UUID, subTask *model.SubTask) error {
	return m.Called(ctx, taskID, subTask).Error(0)
}

func (m *MockTaskRepository) SetSubTaskCompleted(ctx context.Context, taskID, subTaskID uuid.UUID, completed bool) error {
	return m.Called(ctx, taskID, subTaskID, completed).Error(0)
}

func (m *MockTaskRepository) AddActivity(ctx context.Context, taskID uuid.UUID, activity *model.Activity) error {
	return m.Called(ctx, taskID, activity).Error(0)
}

func (m *MockTaskRepository) Trash(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskRepository) DeleteTrashed(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskRepository) RestoreTrashed(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListTeam(ctx context.Context, search string) ([]model.User, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListRecentActive(ctx context.Context, limit int) ([]model.User, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return m.Called(ctx, id, hashedPassword).Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockNoticeRepository struct {
	mock.Mock
}

var _ repository.NoticeRepositoryInterface = (*MockNoticeRepository)(nil)

func (m *MockNoticeRepository) ListUnread(ctx context.Context, userID uuid.UUID) ([]model.Notice, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Notice), args.Error(1)
}

func (m *MockNoticeRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockNoticeRepository) MarkRead(ctx context.Context, userID, noticeID uuid.UUID) error {
	return m.Called(ctx, userID, noticeID).Error(0)
}
