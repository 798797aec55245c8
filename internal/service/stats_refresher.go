package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/feedtamer/internal/repository"
	"github.com/d60-Lab/feedtamer/pkg/logger"
)

type statsJob struct {
	userID    string
	accountID string
	enqAt     time.Time
}

// StatsRefresher 简单的本地异步统计刷新器：互动发生后重算账号已读比例
// 缓存统计非权威数据，队列满时直接丢弃
type StatsRefresher struct {
	interactions repository.InteractionRepository
	accounts     repository.AccountRepository
	ch           chan statsJob
}

func NewStatsRefresher(interactions repository.InteractionRepository, accounts repository.AccountRepository, queueSize int) *StatsRefresher {
	if queueSize <= 0 {
		queueSize = 4096
	}
	return &StatsRefresher{interactions: interactions, accounts: accounts, ch: make(chan statsJob, queueSize)}
}

func (r *StatsRefresher) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	work := func(job statsJob) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		r.refresh(ctx, job)
		cancel()
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job := <-r.ch:
					work(job)
				case <-stopCh:
					// 停止信号后先把积压排空再退出
					for {
						select {
						case job := <-r.ch:
							work(job)
						default:
							return
						}
					}
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *StatsRefresher) Enqueue(userID, accountID string) {
	select {
	case r.ch <- statsJob{userID: userID, accountID: accountID, enqAt: time.Now()}:
	default:
		logger.Warn("stats refresher queue full, drop", zap.String("user", userID), zap.String("account", accountID))
	}
}

// QueueLen 返回当前队列长度（采样值）
func (r *StatsRefresher) QueueLen() int { return len(r.ch) }

func (r *StatsRefresher) refresh(ctx context.Context, job statsJob) {
	account, err := r.accounts.FindOwned(ctx, job.userID, job.accountID)
	if err != nil {
		return
	}
	seen, total, err := r.interactions.ReadStats(ctx, job.userID, job.accountID)
	if err != nil {
		logger.Warn("read stats failed", zap.String("account", job.accountID), zap.Error(err))
		return
	}
	stats := account.Stats
	if total > 0 {
		stats.ReadPercentage = float64(seen) / float64(total) * 100
	} else {
		stats.ReadPercentage = 0
	}
	now := time.Now()
	stats.LastInteraction = &now
	if err := r.accounts.UpdateStats(ctx, job.accountID, stats); err != nil {
		logger.Warn("update stats failed", zap.String("account", job.accountID), zap.Error(err))
	}
}
