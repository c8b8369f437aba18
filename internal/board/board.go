// Package board derives the Kanban columns of a project from its tasks.
package board

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fabiansimon/Frello/internal/models"
)

type Color string

const (
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
)

// Column is one status bucket of the board.
type Column struct {
	Status models.TaskStatus `json:"status"`
	Title  string            `json:"title"`
	Color  Color             `json:"color"`
	Tasks  []models.Task     `json:"tasks"`
}

// Board holds the five columns in display order.
type Board struct {
	Columns []Column `json:"columns"`
}

type columnMeta struct {
	title string
	color Color
}

var layout = map[models.TaskStatus]columnMeta{
	models.TaskStatusToDo:       {title: "To Do", color: ColorBlue},
	models.TaskStatusInProgress: {title: "In Progress", color: ColorYellow},
	models.TaskStatusInReview:   {title: "In Review", color: ColorPurple},
	models.TaskStatusDeclined:   {title: "Declined", color: ColorRed},
	models.TaskStatusDone:       {title: "Done", color: ColorGreen},
}

// UnknownStatusError is returned by Partition for a task whose status is not
// one of the board columns.
type UnknownStatusError struct {
	TaskID uuid.UUID
	Status models.TaskStatus
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("task %s has unknown status %q", e.TaskID, e.Status)
}

// Partition groups tasks into columns, keeping input order inside each column.
func Partition(tasks []models.Task) (Board, error) {
	columns := make([]Column, len(models.TaskStatuses))
	for i, status := range models.TaskStatuses {
		meta := layout[status]
		columns[i] = Column{Status: status, Title: meta.title, Color: meta.color, Tasks: []models.Task{}}
	}

	for _, task := range tasks {
		idx, err := columnIndex(task)
		if err != nil {
			return Board{}, err
		}
		columns[idx].Tasks = append(columns[idx].Tasks, task)
	}

	return Board{Columns: columns}, nil
}

func columnIndex(task models.Task) (int, error) {
	switch task.Status {
	case models.TaskStatusToDo:
		return 0, nil
	case models.TaskStatusInProgress:
		return 1, nil
	case models.TaskStatusInReview:
		return 2, nil
	case models.TaskStatusDeclined:
		return 3, nil
	case models.TaskStatusDone:
		return 4, nil
	default:
		return 0, &UnknownStatusError{TaskID: task.ID, Status: task.Status}
	}
}

// Size returns the total number of tasks on the board.
func (b Board) Size() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Tasks)
	}
	return n
}

type ColumnCount struct {
	Status models.TaskStatus `json:"status"`
	Title  string            `json:"title"`
	Color  Color             `json:"color"`
	Count  int               `json:"count"`
}

// BoardSummary is the tile row shown above the board.
type BoardSummary struct {
	Columns []ColumnCount `json:"columns"`
	// AssignedToViewer counts tasks delegated to the requesting user.
	AssignedToViewer int `json:"assigned_to_you"`
	Total            int `json:"total"`
}

func Summary(b Board, viewerID uuid.UUID) BoardSummary {
	summary := BoardSummary{Columns: make([]ColumnCount, 0, len(b.Columns))}
	for _, col := range b.Columns {
		summary.Columns = append(summary.Columns, ColumnCount{
			Status: col.Status,
			Title:  col.Title,
			Color:  col.Color,
			Count:  len(col.Tasks),
		})
		summary.Total += len(col.Tasks)
		for i := range col.Tasks {
			if col.Tasks[i].IsAssignedTo(viewerID) {
				summary.AssignedToViewer++
			}
		}
	}
	return summary
}
