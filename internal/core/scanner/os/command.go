package os

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/text/encoding"

	"ttlfinger/internal/core/model"
)

// Executor 执行外部命令并返回标准输出
// 即使命令失败也要返回已捕获的输出 (例如 "Destination Host Unreachable")
type Executor interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecExecutor 基于 os/exec 的默认实现
type ExecExecutor struct {
	// WaitDelay ctx 取消后等待管道关闭的最长时间，防止子进程遗留的孙进程拖住 Wait
	WaitDelay time.Duration
}

func (e ExecExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.WaitDelay = e.WaitDelay
	err := cmd.Run()
	return stdout.Bytes(), err
}

// CommandProber 调用系统 ping 命令进行探测
// 不需要 raw socket 权限，是默认引擎
type CommandProber struct {
	binary     string
	convention Convention
	timeout    time.Duration
	executor   Executor
	decoder    encoding.Encoding
}

// CommandOption CommandProber 可选项
type CommandOption func(*CommandProber)

// WithExecutor 替换命令执行器
func WithExecutor(e Executor) CommandOption {
	return func(p *CommandProber) { p.executor = e }
}

// WithEncoding 设置 ping 输出的字符编码，nil 表示 UTF-8
func WithEncoding(enc encoding.Encoding) CommandOption {
	return func(p *CommandProber) { p.decoder = enc }
}

// NewCommandProber 创建命令探测器
// timeout 是调用方强制的硬超时，<= 0 时只依赖 ping 自身的 -w
func NewCommandProber(binary string, convention Convention, timeout time.Duration, opts ...CommandOption) *CommandProber {
	p := &CommandProber{
		binary:     binary,
		convention: convention,
		timeout:    timeout,
		executor:   ExecExecutor{WaitDelay: 500 * time.Millisecond},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Convention 返回注入的调用约定
func (p *CommandProber) Convention() Convention {
	return p.convention
}

func (p *CommandProber) Probe(ctx context.Context, host string) *model.ProbeResult {
	start := time.Now()
	result := &model.ProbeResult{
		Host:     host,
		Platform: p.convention.Platform,
	}

	probeCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	out, err := p.executor.Output(probeCtx, p.binary, p.convention.Args(host)...)
	result.Duration = time.Since(start)
	result.Raw = decodeOutput(p.decoder, out)

	if err != nil {
		// 父 ctx 还活着而 probeCtx 超时，说明是我们的硬超时在起作用
		if errors.Is(probeCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			result.Err = fmt.Errorf("%w after %v", ErrProbeTimeout, p.timeout)
		} else {
			result.Err = fmt.Errorf("ping %s: %w", host, err)
		}
	}
	return result
}
