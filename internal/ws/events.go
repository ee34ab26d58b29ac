package ws

import (
	"encoding/json"
	"time"
)

type AssignmentCreatedEvent struct {
	Type         string  `json:"type"`
	TaskID       string  `json:"task_id"`
	TaskTitle    string  `json:"task_title"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Score        float64 `json:"score"`
	Timestamp    string  `json:"timestamp"`
}

type TaskStatusChangedEvent struct {
	Type      string `json:"type"`
	TaskID    string `json:"task_id"`
	TaskTitle string `json:"task_title"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *Hub) NotifyAssignmentCreated(taskID, taskTitle, employeeID, employeeName string, score float64) {
	if h == nil {
		return
	}
	h.broadcastJSON(AssignmentCreatedEvent{
		Type:         "assignment_created",
		TaskID:       taskID,
		TaskTitle:    taskTitle,
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Score:        score,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) NotifyTaskStatusChanged(taskID, taskTitle, status string) {
	if h == nil {
		return
	}
	h.broadcastJSON(TaskStatusChangedEvent{
		Type:      "task_status_changed",
		TaskID:    taskID,
		TaskTitle: taskTitle,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) broadcastJSON(evt any) {
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
