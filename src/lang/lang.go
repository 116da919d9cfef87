/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package lang

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localesFS embed.FS

const DefaultLang = "en"

var (
	mu           sync.RWMutex
	translations = make(map[string]map[string]string)
)

// LoadTranslations reads every embedded locale file. It returns the number of languages loaded.
func LoadTranslations() (int, error) {
	return loadFrom(localesFS, "locales")
}

func loadFrom(fsys fs.FS, dir string) (int, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return 0, err
	}

	loaded := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		langCode := strings.TrimSuffix(entry.Name(), ".json")
		file, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return 0, err
		}

		var langMap map[string]string
		if err := json.Unmarshal(file, &langMap); err != nil {
			return 0, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		loaded[langCode] = langMap
	}

	mu.Lock()
	translations = loaded
	mu.Unlock()

	return len(loaded), nil
}

// GetString returns the translation of key, falling back to English and then to the key itself.
func GetString(langCode, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if lang, ok := translations[normalize(langCode)]; ok {
		if val, ok := lang[key]; ok {
			return val
		}
	}
	// Fallback to English
	if lang, ok := translations[DefaultLang]; ok {
		if val, ok := lang[key]; ok {
			return val
		}
	}
	return key
}

// Sprintf formats the translation of key with args.
func Sprintf(langCode, key string, args ...any) string {
	return fmt.Sprintf(GetString(langCode, key), args...)
}

func GetAvailableLangs() []string {
	mu.RLock()
	defer mu.RUnlock()

	langs := make([]string, 0, len(translations))
	for k := range translations {
		langs = append(langs, k)
	}
	sort.Strings(langs)
	return langs
}

// normalize maps Telegram language codes such as "it-IT" to "it".
func normalize(langCode string) string {
	langCode = strings.ToLower(langCode)
	if i := strings.IndexAny(langCode, "-_"); i > 0 {
		langCode = langCode[:i]
	}
	return langCode
}
