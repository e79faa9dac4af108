package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/webbangiay/internal/cache"
	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/logger"

	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"
)

const captchaCharset = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务
// Redis 可用时答案写入 Redis，多实例共享；否则使用进程内存储
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	if cfg.Length <= 0 {
		cfg.Length = 4
	}
	if cfg.Width <= 0 {
		cfg.Width = 240
	}
	if cfg.Height <= 0 {
		cfg.Height = 80
	}
	if cfg.ExpireSeconds <= 0 {
		cfg.ExpireSeconds = 300
	}
	if cfg.MaxStore <= 0 {
		cfg.MaxStore = 10240
	}
	return &CaptchaService{cfg: cfg}
}

// Enabled 是否要求验证码
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if !s.Enabled() {
		return nil, ErrCaptchaUnavailable
	}
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		base64Captcha.OptionShowHollowLine,
		s.cfg.Length,
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验验证码，未启用时直接通过
func (s *CaptchaService) Verify(payload CaptchaVerifyPayload) error {
	if !s.Enabled() {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.ensureStore().Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		return s.store
	}
	expire := time.Duration(s.cfg.ExpireSeconds) * time.Second
	if client := cache.Client(); client != nil {
		s.store = &redisCaptchaStore{client: client, expire: expire, prefix: cache.Key("captcha:")}
	} else {
		s.store = base64Captcha.NewMemoryStore(s.cfg.MaxStore, expire)
	}
	return s.store
}

// redisCaptchaStore base64Captcha.Store 的 Redis 实现
type redisCaptchaStore struct {
	client *redis.Client
	expire time.Duration
	prefix string
}

func (r *redisCaptchaStore) Set(id string, value string) error {
	return r.client.Set(context.Background(), r.prefix+id, value, r.expire).Err()
}

func (r *redisCaptchaStore) Get(id string, clear bool) string {
	ctx := context.Background()
	key := r.prefix + id
	var (
		val string
		err error
	)
	if clear {
		val, err = r.client.GetDel(ctx, key).Result()
	} else {
		val, err = r.client.Get(ctx, key).Result()
	}
	if err != nil {
		if err != redis.Nil {
			logger.Warnw("captcha_store_get_failed", "error", err)
		}
		return ""
	}
	return val
}

func (r *redisCaptchaStore) Verify(id, answer string, clear bool) bool {
	stored := r.Get(id, clear)
	return stored != "" && strings.EqualFold(stored, strings.TrimSpace(answer))
}
