package main

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yml
var languagesYAML []byte

// otherLanguage groups files whose extension is not in the table.
const otherLanguage = "Other"

// LanguageInfo holds details about a specific programming/markup language.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // e.g., programming, data, markup
	Extensions []string `yaml:"extensions"`
}

// LanguageMap maps language names (e.g., "Go") to their details.
type LanguageMap map[string]LanguageInfo

// LoadedLanguageData holds the parsed language map and an extension index.
type LoadedLanguageData struct {
	Langs        LanguageMap
	extensionMap map[string]string // ".go" -> "Go"
}

// LanguageStat is the per-language slice of the totals.
type LanguageStat struct {
	Name  string
	Files int
	Lines int
}

// loadLanguageData parses the embedded language table.
func loadLanguageData() (*LoadedLanguageData, error) {
	return parseLanguageData(languagesYAML)
}

func parseLanguageData(raw []byte) (*LoadedLanguageData, error) {
	var langs LanguageMap
	if err := yaml.Unmarshal(raw, &langs); err != nil {
		return nil, fmt.Errorf("error parsing language table: %w", err)
	}

	data := &LoadedLanguageData{
		Langs:        langs,
		extensionMap: make(map[string]string),
	}

	// Map iteration order is random; sort so a shared extension always
	// resolves to the same language.
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, ext := range langs[name].Extensions {
			lowerExt := strings.ToLower(ext)
			if data.extensionMap[lowerExt] == "" {
				data.extensionMap[lowerExt] = name
			}
		}
	}
	return data, nil
}

// LanguageForExt returns the language for an extension given without its dot.
func (ld *LoadedLanguageData) LanguageForExt(ext string) (string, bool) {
	if ld == nil || ext == "" {
		return "", false
	}
	lang, ok := ld.extensionMap["."+strings.ToLower(ext)]
	return lang, ok
}

// summarizeLanguages groups counted files by language, largest first.
func summarizeLanguages(files []FileInfo, ld *LoadedLanguageData) []LanguageStat {
	byName := make(map[string]*LanguageStat)
	for _, f := range files {
		name, ok := ld.LanguageForExt(f.Ext)
		if !ok {
			name = otherLanguage
		}
		s := byName[name]
		if s == nil {
			s = &LanguageStat{Name: name}
			byName[name] = s
		}
		s.Files++
		s.Lines += f.Lines
	}

	stats := make([]LanguageStat, 0, len(byName))
	for _, s := range byName {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Lines != stats[j].Lines {
			return stats[i].Lines > stats[j].Lines
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}
