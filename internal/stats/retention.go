package stats

import (
	"fmt"
	"time"

	"github.com/daily-saju/fortune-backend/pkg/lifecycle"
)

// Clock 抽象了保留期清理器对时间的全部依赖，
// 测试中用假时钟推进虚拟时间而不是等待真实定时器。
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RetentionRunner 是唯一的后台任务：首次等到下一个本地午夜
// 执行清理，之后按固定24小时间隔重复，直到收到停机信号。
type RetentionRunner struct {
	service *Service
	clock   Clock
}

// NewRetentionRunner 创建保留期清理器。
func NewRetentionRunner(service *Service) *RetentionRunner {
	return &RetentionRunner{service: service, clock: systemClock{}}
}

// NewRetentionRunnerWithClock 用指定时钟创建清理器，供测试使用。
func NewRetentionRunnerWithClock(service *Service, clock Clock) *RetentionRunner {
	return &RetentionRunner{service: service, clock: clock}
}

// Run 阻塞执行清理循环，应在独立的Goroutine中启动。
// 单次清理的失败只记录日志，不中断调度。
func (r *RetentionRunner) Run(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("流失记录保留期清理器已启动。")

	wait := nextLocalMidnight(r.clock.Now()).Sub(r.clock.Now())
	for {
		select {
		case <-handle.Done():
			fmt.Println("保留期清理器收到停机信号，退出。")
			return
		case <-r.clock.After(wait):
		}
		r.trimOnce()
		wait = 24 * time.Hour
	}
}

// trimOnce 执行一次清理，捕获任何失败以保证调度存活。
func (r *RetentionRunner) trimOnce() {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Printf("保留期清理异常: %v\n", rec)
		}
	}()
	if err := r.service.TrimExpiredDropouts(); err != nil {
		fmt.Printf("保留期清理失败: %v\n", err)
		return
	}
	fmt.Println("保留期清理完成。")
}

// nextLocalMidnight 返回now之后最近的本地午夜。
func nextLocalMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
