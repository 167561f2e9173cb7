package util

import (
	"regexp"
	"strings"
	"time"
)

var contentIDRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// IsContentID 校验内容 ID 是否为 64 位小写十六进制
func IsContentID(s string) bool {
	return contentIDRegex.MatchString(s)
}

// NormalizeTag 规范化话题标签：去掉前导 #、转小写、去除首尾空白
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	return strings.ToLower(tag)
}

// NormalizeTags 规范化并去重标签列表，保持首次出现的顺序
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// HourStart 截断到整点（UTC）
func HourStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}
