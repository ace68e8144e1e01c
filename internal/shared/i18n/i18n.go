package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"sync"

	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	mu            sync.RWMutex
	bundle        *i18n.Bundle
	defaultLocale = "az"
	once          sync.Once
)

// Init loads the embedded locale files. defLocale overrides the default ("az")
// when not empty. Calling T before Init loads the bundle with the default.
func Init(defLocale string) {
	mu.Lock()
	if defLocale != "" {
		defaultLocale = defLocale
	}
	mu.Unlock()
	once.Do(load)
}

func load() {
	b := i18n.NewBundle(language.Azerbaijani)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		zap.L().Named("i18n").Error("read locales dir failed", zap.Error(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			zap.L().Named("i18n").Error("read locale file failed", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
			zap.L().Named("i18n").Error("parse locale file failed", zap.String("file", e.Name()), zap.Error(err))
		}
	}

	mu.Lock()
	bundle = b
	mu.Unlock()
}

// T translates messageID for the locale carried by ctx, falling back to the
// default locale. Unknown ids are returned unchanged.
func T(ctx context.Context, messageID string, templateData ...map[string]any) string {
	once.Do(load)

	mu.RLock()
	b, def := bundle, defaultLocale
	mu.RUnlock()
	if b == nil {
		return messageID
	}

	langs := []string{}
	if l := contextutil.GetLocale(ctx); l != "" {
		langs = append(langs, l)
	}
	langs = append(langs, def)

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}

	msg, err := i18n.NewLocalizer(b, langs...).Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}
