package service

import (
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"Upstat/internal/api/config"
	"Upstat/internal/model"
	"Upstat/internal/pkg/consts"
	"Upstat/internal/pkg/redis"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

// FaceService 查询 UP 主头像，失败时返回占位值，从不返回错误
type FaceService interface {
	Lookup(ctx context.Context, uid int64) string
	NotFound() string
}

type faceServiceImpl struct {
	client     *resty.Client
	enabled    bool
	baseURL    string
	queryParam string
	notFound   string
}

type profileResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Face string `json:"face"`
	} `json:"data"`
}

func NewFaceService(cfg config.ProfileConfig) FaceService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	param := cfg.QueryParam
	if param == "" {
		param = "mid"
	}
	notFound := cfg.NotFound
	if notFound == "" {
		notFound = "Not Found"
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; upstat)").
		SetHeader("Accept", consts.ContentTypeJSON)

	return &faceServiceImpl{
		client:     client,
		enabled:    cfg.Enabled,
		baseURL:    cfg.BaseURL,
		queryParam: param,
		notFound:   notFound,
	}
}

func (s *faceServiceImpl) NotFound() string {
	return s.notFound
}

func (s *faceServiceImpl) Lookup(ctx context.Context, uid int64) string {
	if !s.enabled {
		return s.notFound
	}
	face, err := s.fetch(ctx, uid)
	if err != nil {
		log.WarnContext(ctx, "face lookup failed", "uid", uid, "err", err)
		return s.notFound
	}
	return face
}

func (s *faceServiceImpl) fetch(ctx context.Context, uid int64) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam(s.queryParam, strconv.FormatInt(uid, 10)).
		Get(s.baseURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", ErrProfileNotFound
	}

	var body profileResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return "", err
	}
	face := strings.TrimSpace(body.Data.Face)
	if face == "" {
		return "", ErrProfileNotFound
	}
	return face, nil
}

// cachedFaceService 用 Redis 缓存头像地址，缓存故障时直接回源
type cachedFaceService struct {
	next FaceService
	ttl  time.Duration
}

func NewCachedFaceService(next FaceService, ttl time.Duration) FaceService {
	return &cachedFaceService{next: next, ttl: ttl}
}

func (s *cachedFaceService) NotFound() string {
	return s.next.NotFound()
}

func (s *cachedFaceService) Lookup(ctx context.Context, uid int64) string {
	key := consts.FaceCacheKey + strconv.FormatInt(uid, 10)
	if face, err := redis.GetValue(ctx, key); err == nil && face != "" {
		return face
	} else if err != nil {
		log.WarnContext(ctx, "face cache read failed", "uid", uid, "err", err)
	}

	face := s.next.Lookup(ctx, uid)
	if face == s.next.NotFound() {
		return face
	}
	if err := redis.SetWithExpiration(ctx, key, face, s.ttl); err != nil {
		log.WarnContext(ctx, "face cache write failed", "uid", uid, "err", err)
	}
	return face
}

// ExportFaces 名册到 {uid, Face} 的纯投影
func ExportFaces(entries []model.RosterEntry) ([]model.FaceEntry, error) {
	faces := make([]model.FaceEntry, 0, len(entries))
	if err := copier.Copy(&faces, &entries); err != nil {
		return nil, err
	}
	return faces, nil
}
