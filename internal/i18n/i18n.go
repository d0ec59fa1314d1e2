// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n resolves the request language (English or Amharic) and
// translates API messages.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Lang is a supported content and message language.
type Lang string

const (
	English Lang = "en"
	Amharic Lang = "am"
)

// Default is used whenever a request names no supported language.
const Default = English

// Supported lists languages in matcher preference order.
var Supported = []Lang{English, Amharic}

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

var (
	loadOnce     sync.Once
	loadErr      error
	translations map[Lang]map[string]string

	matcher = language.NewMatcher([]language.Tag{language.English, language.Amharic})
)

// Init loads the embedded catalogs. Calling it is optional; T loads
// lazily. It exists so startup can fail fast on a broken catalog.
func Init() error {
	loadOnce.Do(func() {
		translations = make(map[Lang]map[string]string, len(Supported))
		for _, lang := range Supported {
			msgs, err := loadLanguage(lang)
			if err != nil {
				loadErr = fmt.Errorf("failed to load language %s: %w", lang, err)
				return
			}
			translations[lang] = msgs
		}
		slog.Debug("i18n initialized", "languages", Supported)
	})
	return loadErr
}

func loadLanguage(lang Lang) (map[string]string, error) {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	out := make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		out[msg.ID] = msg.Translation
	}
	return out, nil
}

// T translates key into lang, falling back to English and then to the key
// itself. Optional args are applied with fmt.Sprintf.
func T(lang Lang, key string, args ...any) string {
	if err := Init(); err != nil {
		return key
	}

	translation, ok := translations[lang][key]
	if !ok {
		translation, ok = translations[Default][key]
		if !ok {
			return key
		}
		if lang != Default {
			slog.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// Parse maps a query value such as "am", "AM" or "am-ET" to a supported
// language. Anything unrecognised yields Default.
func Parse(s string) Lang {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Default
	}
	return match(tag)
}

// MatchAcceptLanguage picks a supported language from an Accept-Language
// header value.
func MatchAcceptLanguage(header string) Lang {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	return match(tags...)
}

func match(tags ...language.Tag) Lang {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(Supported) {
		return Default
	}
	return Supported[idx]
}

// IsSupported reports whether s names a supported language exactly.
func IsSupported(s string) bool {
	for _, l := range Supported {
		if string(l) == strings.ToLower(s) {
			return true
		}
	}
	return false
}
