package cron

import (
	log "log/slog"
	"sync"
	"time"

	"Upstat/internal/api/config"

	"github.com/robfig/cron/v3"
)

// State 调度器对外可见的状态
type State struct {
	Spec        string    `json:"spec"`
	Invocations int       `json:"invocations"`
	LastRun     time.Time `json:"last_run"`
	NextRun     time.Time `json:"next_run"`
	Running     bool      `json:"running"`
}

type Manager struct {
	engine     *cron.Cron
	spec       string
	runOnStart bool
	job        cron.Job
	entryID    cron.EntryID

	mu          sync.Mutex
	invocations int
	lastRun     time.Time
	running     bool
}

// NewCronManager 同一时刻只允许一次运行，上一次未结束时跳过本次触发
func NewCronManager(spec string, runOnStart bool, job cron.Job) *Manager {
	logger := cron.PrintfLogger(log.NewLogLogger(log.Default().Handler(), log.LevelInfo))
	return &Manager{
		engine: cron.New(
			cron.WithParser(config.ScheduleParser),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
		spec:       spec,
		runOnStart: runOnStart,
		job:        job,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	id, err := s.engine.AddJob(s.spec, cron.FuncJob(s.invoke))
	if err != nil {
		return err
	}
	s.entryID = id
	return nil
}

func (s *Manager) invoke() {
	s.mu.Lock()
	s.invocations++
	s.lastRun = time.Now()
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()
	s.job.Run()
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "spec", s.spec)
	s.engine.Start()
	if s.runOnStart && s.entryID != 0 {
		// 经过包装的任务与定时触发共享 SkipIfStillRunning
		go s.engine.Entry(s.entryID).WrappedJob.Run()
	}
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

func (s *Manager) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Spec:        s.spec,
		Invocations: s.invocations,
		LastRun:     s.lastRun,
		Running:     s.running,
	}
	if s.entryID != 0 {
		st.NextRun = s.engine.Entry(s.entryID).Next
	}
	return st
}
