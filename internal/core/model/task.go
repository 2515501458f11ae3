/**
 * 任务模型定义 (Core Domain)
 * @date: 2026.10.14
 * @description: 核心任务模型。CLI 参数先转换为 Task，再交给对应的 Runner 执行。
 */

package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskType 定义任务类型
type TaskType string

const (
	TaskTypeOsTTLScan TaskType = "os_ttl_scan" // 基于 TTL 的操作系统识别
)

// TaskStatus 定义任务状态
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusSuccess   TaskStatus = "success"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// Task 核心任务结构体
type Task struct {
	ID        string                 `json:"id"`
	Type      TaskType               `json:"type"`
	Target    string                 `json:"target"`           // 输入文件路径
	Params    map[string]interface{} `json:"params,omitempty"` // 任务特定参数
	Timeout   time.Duration          `json:"timeout"`
	CreatedAt time.Time              `json:"created_at"`
}

// TaskResult 任务执行结果，每个被报告的主机对应一条
type TaskResult struct {
	TaskID      string      `json:"task_id"`
	Status      TaskStatus  `json:"status"`
	Result      interface{} `json:"result"`
	Error       string      `json:"error,omitempty"`
	ExecutedAt  time.Time   `json:"executed_at"`
	CompletedAt time.Time   `json:"completed_at"`
}

// NewTask 创建一个新任务
func NewTask(taskType TaskType, target string) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Type:      taskType,
		Target:    target,
		CreatedAt: time.Now(),
		Params:    make(map[string]interface{}),
	}
}

// ParamBool 读取 bool 参数，缺失或类型不符时返回 def
func (t *Task) ParamBool(key string, def bool) bool {
	if v, ok := t.Params[key].(bool); ok {
		return v
	}
	return def
}

// ParamInt 读取 int 参数
func (t *Task) ParamInt(key string, def int) int {
	if v, ok := t.Params[key].(int); ok {
		return v
	}
	return def
}

// ParamString 读取 string 参数
func (t *Task) ParamString(key string, def string) string {
	if v, ok := t.Params[key].(string); ok && v != "" {
		return v
	}
	return def
}

// ParamDuration 读取 time.Duration 参数
func (t *Task) ParamDuration(key string, def time.Duration) time.Duration {
	if v, ok := t.Params[key].(time.Duration); ok && v > 0 {
		return v
	}
	return def
}
