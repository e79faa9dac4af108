package service

import (
	"strings"
	"time"

	"github.com/webbangiay/internal/config"
)

// resolveLocation 解析业务时区，失败回退本地时区
func resolveLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// dateOnly 截取到所在时区的零点
func dateOnly(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BusinessLocation 配置中的业务时区
func BusinessLocation(cfg *config.Config) *time.Location {
	if cfg == nil {
		return time.Local
	}
	return resolveLocation(cfg.Server.Timezone)
}
