// Package circuitbreaker 实现简单的三态熔断器
//
// 状态机：
//
//	CLOSED（正常）--连续失败达到阈值--> OPEN（熔断）
//	OPEN --冷却时间到--> HALF_OPEN（试探）
//	HALF_OPEN --试探成功--> CLOSED
//	HALF_OPEN --试探失败--> OPEN
//
// 用途：保护对外部依赖的调用（如消息队列发布），
// 依赖持续故障时快速失败，避免每个请求都等待超时。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpenState 熔断器打开时直接拒绝请求
var ErrOpenState = errors.New("circuit breaker is open")

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 关闭（正常放行）
	StateOpen                  // 打开（直接拒绝）
	StateHalfOpen              // 半开（放行少量试探请求）
)

// String 实现Stringer接口(方便日志输出)
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Counts 统计信息
type Counts struct {
	TotalSuccesses      uint64
	TotalFailures       uint64
	ConsecutiveFailures uint64
}

// Config 熔断器配置
type Config struct {
	FailureThreshold uint64        // 连续失败多少次后熔断
	Cooldown         time.Duration // OPEN状态持续时间，到期后进入HALF_OPEN
}

// CircuitBreaker 熔断器
// 并发安全：内部状态由互斥锁保护
type CircuitBreaker struct {
	name   string
	config Config

	mu       sync.Mutex
	state    State
	counts   Counts
	openedAt time.Time
}

// New 创建熔断器
func New(name string, config Config) *CircuitBreaker {
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5
	}
	if config.Cooldown == 0 {
		config.Cooldown = 30 * time.Second
	}
	return &CircuitBreaker{
		name:   name,
		config: config,
		state:  StateClosed,
	}
}

// Execute 执行受保护的操作
// 熔断器打开时不调用fn，直接返回ErrOpenState
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}

	err := fn()
	cb.afterCall(err == nil)
	return err
}

// State 返回当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.refreshLocked()
	return cb.state
}

// Counts 返回统计信息
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refreshLocked()
	if cb.state == StateOpen {
		return ErrOpenState
	}
	return nil
}

func (cb *CircuitBreaker) afterCall(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if success {
		cb.counts.TotalSuccesses++
		cb.counts.ConsecutiveFailures = 0
		// 半开状态下试探成功，恢复正常
		if cb.state == StateHalfOpen {
			cb.state = StateClosed
		}
		return
	}

	cb.counts.TotalFailures++
	cb.counts.ConsecutiveFailures++

	// 半开状态下试探失败，重新熔断
	if cb.state == StateHalfOpen || cb.counts.ConsecutiveFailures >= cb.config.FailureThreshold {
		cb.state = StateOpen
		cb.openedAt = time.Now()
	}
}

// refreshLocked 冷却时间到后由OPEN转为HALF_OPEN
// 调用方必须持有锁
func (cb *CircuitBreaker) refreshLocked() {
	if cb.state == StateOpen && time.Since(cb.openedAt) >= cb.config.Cooldown {
		cb.state = StateHalfOpen
	}
}
