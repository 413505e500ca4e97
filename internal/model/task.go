package model

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	StageTodo       = "todo"
	StageInProgress = "in progress"
	StageCompleted  = "completed"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityNormal = "normal"
	PriorityLow    = "low"
	PriorityUrgent = "urgent"
)

const (
	ActivityAssigned   = "assigned"
	ActivityStarted    = "started"
	ActivityInProgress = "in progress"
	ActivityBug        = "bug"
	ActivityCompleted  = "completed"
	ActivityCommented  = "commented"
)

var (
	stages     = []string{StageTodo, StageInProgress, StageCompleted}
	priorities = []string{PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow, PriorityUrgent}
	activities = []string{ActivityAssigned, ActivityStarted, ActivityInProgress, ActivityBug, ActivityCompleted, ActivityCommented}
)

type Task struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `gorm:"not null" json:"date"`
	Priority    string         `gorm:"not null;default:normal" json:"priority"`
	Stage       string         `gorm:"not null;default:todo" json:"stage"`
	Assets      pq.StringArray `gorm:"type:text[]" json:"assets"`
	Links       pq.StringArray `gorm:"type:text[]" json:"links"`
	IsTrashed   bool           `gorm:"not null;default:false" json:"isTrashed"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	Team       []User     `gorm:"many2many:task_team" json:"team"`
	SubTasks   []SubTask  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"subTasks"`
	Activities []Activity `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"activities"`
}

type SubTask struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"_id"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Title       string    `json:"title"`
	Tag         string    `json:"tag"`
	Date        time.Time `json:"date"`
	IsCompleted bool      `gorm:"not null;default:false" json:"isCompleted"`
	CreatedAt   time.Time `json:"-"`
}

type Activity struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"_id"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Type      string    `gorm:"not null;default:assigned" json:"type"`
	Activity  string    `json:"activity"`
	ByID      uuid.UUID `gorm:"type:uuid" json:"-"`
	CreatedAt time.Time `json:"date"`

	By *User `gorm:"foreignKey:ByID" json:"by,omitempty"`
}

// TaskFields is the editable part of a task as received from callers.
type TaskFields struct {
	Title       string
	Description string
	Date        time.Time
	Priority    string
	Stage       string
	Assets      []string
	Links       string
	Team        []uuid.UUID
}

// NewTask builds a task from fields and records the initial "started"
// activity on behalf of actor. The ID is assigned here so the notice and
// user back-references can be written in the same transaction.
func NewTask(f TaskFields, actor uuid.UUID) *Task {
	t := &Task{ID: uuid.New()}
	t.Apply(f)
	t.Activities = []Activity{}
	t.SubTasks = []SubTask{}
	t.AppendActivity(ActivityStarted, AssignmentText(len(f.Team), t.Priority, t.Date), actor)
	return t
}

// Apply replaces every editable field with the values in f.
func (t *Task) Apply(f TaskFields) {
	t.Title = f.Title
	t.Description = f.Description
	t.Date = f.Date
	t.Priority = NormalizePriority(f.Priority)
	t.Stage = NormalizeStage(f.Stage)
	t.Assets = pq.StringArray(nonNil(f.Assets))
	t.Links = pq.StringArray(SplitLinks(f.Links))
	t.Team = UsersFromIDs(f.Team)
}

// Duplicate returns a copy of t with a new identity, a "Duplicate - "
// title and an activity log reset to a single "assigned" entry.
func (t *Task) Duplicate(actor uuid.UUID) *Task {
	dup := &Task{
		ID:          uuid.New(),
		Title:       "Duplicate - " + t.Title,
		Description: t.Description,
		Date:        t.Date,
		Priority:    t.Priority,
		Stage:       t.Stage,
		Assets:      append(pq.StringArray{}, t.Assets...),
		Links:       append(pq.StringArray{}, t.Links...),
		Team:        make([]User, 0, len(t.Team)),
		SubTasks:    make([]SubTask, 0, len(t.SubTasks)),
	}
	for _, u := range t.Team {
		dup.Team = append(dup.Team, User{ID: u.ID})
	}
	for _, st := range t.SubTasks {
		dup.AddSubTask(st.Title, st.Tag, st.Date).IsCompleted = st.IsCompleted
	}
	dup.AppendActivity(ActivityAssigned, DuplicationText(t.Priority), actor)
	return dup
}

// AddSubTask appends an uncompleted sub-task and returns it.
func (t *Task) AddSubTask(title, tag string, date time.Time) *SubTask {
	t.SubTasks = append(t.SubTasks, SubTask{
		ID:     uuid.New(),
		TaskID: t.ID,
		Title:  title,
		Tag:    tag,
		Date:   date,
	})
	return &t.SubTasks[len(t.SubTasks)-1]
}

// AppendActivity adds an entry to the activity log. The log is append-only.
func (t *Task) AppendActivity(kind, text string, by uuid.UUID) *Activity {
	a := NewActivity(kind, text, by)
	a.TaskID = t.ID
	t.Activities = append(t.Activities, *a)
	return &t.Activities[len(t.Activities)-1]
}

// NewActivity builds a detached log entry; the task id is set when it is
// attached.
func NewActivity(kind, text string, by uuid.UUID) *Activity {
	return &Activity{
		ID:       uuid.New(),
		Type:     strings.ToLower(kind),
		Activity: text,
		ByID:     by,
	}
}

// TeamIDs lists the ids of the task's team members in order.
func (t *Task) TeamIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.Team))
	for _, u := range t.Team {
		ids = append(ids, u.ID)
	}
	return ids
}

// HasMember reports whether userID is on the task's team.
func (t *Task) HasMember(userID uuid.UUID) bool {
	for _, u := range t.Team {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// NormalizeStage lower-cases stage and folds "in_progress" into
// StageInProgress so each stage has one stored spelling.
func NormalizeStage(stage string) string {
	stage = strings.ToLower(stage)
	if stage == "in_progress" {
		return StageInProgress
	}
	return stage
}

func NormalizePriority(priority string) string {
	return strings.ToLower(priority)
}

func ValidStage(stage string) bool {
	return slices.Contains(stages, NormalizeStage(stage))
}

func ValidPriority(priority string) bool {
	return slices.Contains(priorities, NormalizePriority(priority))
}

func ValidActivityType(kind string) bool {
	return slices.Contains(activities, strings.ToLower(kind))
}

// SplitLinks turns a comma-joined list into its parts. A link containing a
// comma is split as well.
func SplitLinks(links string) []string {
	if links == "" {
		return []string{}
	}
	return strings.Split(links, ",")
}

// AssignmentText is the message recorded and broadcast when a task is
// assigned to a team of teamSize members.
func AssignmentText(teamSize int, priority string, date time.Time) string {
	text := "New task has been assigned to you"
	if teamSize > 1 {
		text += fmt.Sprintf(" and %d others.", teamSize-1)
	}
	text += fmt.Sprintf(
		" The task priority is set at %s priority, so check and act accordingly. The task date is %s. Thank you!",
		priority, date.Format("Mon Jan 02 2006"),
	)
	return text
}

func DuplicationText(priority string) string {
	return fmt.Sprintf("New task has been duplicated with priority %s. Please check and act accordingly.", priority)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
