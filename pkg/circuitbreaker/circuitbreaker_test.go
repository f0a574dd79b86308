package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

// TestCircuitBreaker_ClosedState 测试关闭状态（正常放行）
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := New("test", Config{FailureThreshold: 5, Cooldown: 30 * time.Second})

	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error {
			return nil // 模拟成功
		})
		if err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}

	counts := cb.Counts()
	if counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 测试打开状态（熔断）
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := New("test", Config{FailureThreshold: 5, Cooldown: 30 * time.Second})

	// 连续失败5次触发熔断
	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errors.New("service unavailable")
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}

	// 第6次请求应该立即失败（不调用实际函数）
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if err != ErrOpenState {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}

	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开状态恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := New("test", Config{FailureThreshold: 3, Cooldown: 10 * time.Millisecond})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("boom")
		})
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 等待冷却时间，进入半开
	time.Sleep(20 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("期望状态为HALF_OPEN，实际%s", cb.State())
	}

	// 试探成功，恢复CLOSED
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("试探请求应该放行: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailure 测试半开状态试探失败重新熔断
func TestCircuitBreaker_HalfOpenFailure(t *testing.T) {
	cb := New("test", Config{FailureThreshold: 3, Cooldown: 10 * time.Millisecond})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("boom")
		})
	}
	time.Sleep(20 * time.Millisecond)

	// 试探失败，重新OPEN
	_ = cb.Execute(func() error { return errors.New("still down") })
	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}
}
