package runner

import (
	"context"
	"fmt"
	"sync"

	"ttlfinger/internal/core/model"
)

// RunnerManager 管理所有的 Runner
type RunnerManager struct {
	runners map[model.TaskType]Runner
	mu      sync.RWMutex
}

func NewRunnerManager(runners ...Runner) *RunnerManager {
	m := &RunnerManager{
		runners: make(map[model.TaskType]Runner),
	}
	for _, r := range runners {
		m.Register(r)
	}
	return m
}

// Register 注册一个 Runner，同类型的旧 Runner 会被替换
func (m *RunnerManager) Register(runner Runner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runners[runner.Name()] = runner
}

// Get 获取指定类型的 Runner
func (m *RunnerManager) Get(taskType model.TaskType) (Runner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if runner, ok := m.runners[taskType]; ok {
		return runner, nil
	}
	return nil, fmt.Errorf("no runner found for task type: %s", taskType)
}

// Execute 执行任务
func (m *RunnerManager) Execute(ctx context.Context, task *model.Task) ([]*model.TaskResult, error) {
	runner, err := m.Get(task.Type)
	if err != nil {
		return nil, err
	}

	return runner.Run(ctx, task)
}
