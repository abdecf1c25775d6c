package service

import (
	"context"
	"sync"
	"time"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time {
	return testNow
}

type fakeFaceService struct {
	mu    sync.Mutex
	faces map[int64]string
	calls int
}

func (f *fakeFaceService) Lookup(_ context.Context, uid int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if face, ok := f.faces[uid]; ok {
		return face
	}
	return f.NotFound()
}

func (f *fakeFaceService) NotFound() string {
	return "Not Found"
}
