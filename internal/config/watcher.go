package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// InputWatcher 输入文件监听器
//
// ping sweep 工具会周期性地重写它的输出文件，watch 模式下每次重写后重新跑一遍识别。
// 监听的是文件所在目录而不是文件本身：很多工具通过 rename 原子替换文件，
// 直接 watch 文件会在第一次替换后丢失监听。
type InputWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(path string)
	delay    time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewInputWatcher 创建输入文件监听器
// delay 为防抖延迟，连续的写事件只触发一次回调
func NewInputWatcher(path string, delay time.Duration, onChange func(path string)) (*InputWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	return &InputWatcher{
		path:     abs,
		watcher:  watcher,
		onChange: onChange,
		delay:    delay,
	}, nil
}

// Run 阻塞直到 ctx 取消或 watcher 出错
func (w *InputWatcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("input watcher error: %w", err)
		}
	}
}

// handleEvent 只关心目标文件的写入、创建
func (w *InputWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		w.onChange(w.path)
	})
}

func (w *InputWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
