package dashboard_test

import (
	"fmt"
	"testing"

	"taskmanager/internal/dashboard"
	"taskmanager/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func tasks(pairs ...[2]string) []model.Task {
	out := make([]model.Task, 0, len(pairs))
	for i, s := range pairs {
		out = append(out, model.Task{ID: uuid.New(), Title: fmt.Sprintf("task %d", i), Stage: s[0], Priority: s[1]})
	}
	return out
}

func TestBuild_CountsByStageAndPriority(t *testing.T) {
	list := tasks(
		[2]string{"todo", "normal"},
		[2]string{"completed", "high"},
		[2]string{"todo", "high"},
		[2]string{"in progress", "low"},
	)

	s := dashboard.Build(list, nil, false)

	assert.Equal(t, 4, s.TotalTasks)
	assert.Equal(t, map[string]int{"todo": 2, "completed": 1, "in progress": 1}, s.TasksByStage)
	// First-seen order, not alphabetical
	assert.Equal(t, []dashboard.PriorityTotal{
		{Name: "normal", Total: 1},
		{Name: "high", Total: 2},
		{Name: "low", Total: 1},
	}, s.GraphData)
	assert.Len(t, s.Last10Task, 4)
	assert.Empty(t, s.Users)
}

func TestBuild_TotalMatchesStageCounts(t *testing.T) {
	var pairs [][2]string
	for i := 0; i < 25; i++ {
		pairs = append(pairs, [2]string{[]string{"todo", "in progress", "completed"}[i%3], "medium"})
	}

	s := dashboard.Build(tasks(pairs...), nil, true)

	sum := 0
	for _, n := range s.TasksByStage {
		sum += n
	}
	assert.Equal(t, s.TotalTasks, sum)
	assert.Len(t, s.Last10Task, 10)
	assert.Equal(t, "task 0", s.Last10Task[0].Title)
}

func TestBuild_StageSpellingsShareABucket(t *testing.T) {
	var list []model.Task
	for _, stage := range []string{"In Progress", "IN_PROGRESS", "in_progress", "todo"} {
		list = append(list, *model.NewTask(model.TaskFields{Title: stage, Stage: stage, Priority: "high"}, uuid.New()))
	}

	s := dashboard.Build(list, nil, false)

	assert.Equal(t, map[string]int{model.StageInProgress: 3, model.StageTodo: 1}, s.TasksByStage)
}

func TestBuild_UsersOnlyForAdmins(t *testing.T) {
	users := []model.User{{ID: uuid.New(), Name: "Ann"}}

	assert.Equal(t, users, dashboard.Build(nil, users, true).Users)
	assert.Empty(t, dashboard.Build(nil, users, false).Users)
}

func TestBuild_Empty(t *testing.T) {
	s := dashboard.Build(nil, nil, true)

	assert.Equal(t, 0, s.TotalTasks)
	assert.NotNil(t, s.Last10Task)
	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.GraphData)
	assert.Empty(t, s.TasksByStage)
}
