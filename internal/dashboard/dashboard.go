// Package dashboard derives summary statistics from a task listing.
package dashboard

import (
	"taskmanager/internal/model"
)

const (
	recentTasks = 10
	RecentUsers = 10
)

// PriorityTotal is one bar of the priority chart.
type PriorityTotal struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type Summary struct {
	TotalTasks   int             `json:"totalTasks"`
	Last10Task   []model.Task    `json:"last10Task"`
	Users        []model.User    `json:"users"`
	TasksByStage map[string]int  `json:"tasks"`
	GraphData    []PriorityTotal `json:"graphData"`
}

// Build summarizes tasks, which must already be scoped to the caller and
// sorted newest first. users is only reported to admins.
func Build(tasks []model.Task, users []model.User, isAdmin bool) Summary {
	s := Summary{
		TotalTasks:   len(tasks),
		Last10Task:   tasks[:min(len(tasks), recentTasks)],
		Users:        []model.User{},
		TasksByStage: make(map[string]int),
		GraphData:    []PriorityTotal{},
	}
	if s.Last10Task == nil {
		s.Last10Task = []model.Task{}
	}
	if isAdmin && users != nil {
		s.Users = users
	}

	// Priorities keep the order in which they are first met
	index := make(map[string]int)
	for _, t := range tasks {
		s.TasksByStage[t.Stage]++

		i, seen := index[t.Priority]
		if !seen {
			i = len(s.GraphData)
			index[t.Priority] = i
			s.GraphData = append(s.GraphData, PriorityTotal{Name: t.Priority})
		}
		s.GraphData[i].Total++
	}
	return s
}
