package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/zyedidia/generic/mapset"
)

// ErrTargetParse 目标坐标字段不是合法的 JSON 数组
var ErrTargetParse = errors.New("invalid target coordinates")

// DecodeTargets 解析目标坐标 JSON
//
// 空字符串返回空列表且无错误；语法错误或顶层不是数组时返回空列表和 ErrTargetParse。
// 数组元素宽松解析：x/y 为字符串数字时也接受；非对象元素被跳过，
// 坐标缺失或不是数字的元素记录警告后跳过。
func DecodeTargets(raw string) ([]Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Target{}, nil
	}
	if !gjson.Valid(raw) {
		return []Target{}, fmt.Errorf("%w: malformed JSON", ErrTargetParse)
	}

	root := gjson.Parse(raw)
	if !root.IsArray() {
		return []Target{}, fmt.Errorf("%w: expected an array, got %s", ErrTargetParse, root.Type)
	}

	targets := make([]Target, 0, len(root.Array()))
	root.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		name := v.Get("name").String()
		x, okX := coordinate(v.Get("x"))
		y, okY := coordinate(v.Get("y"))
		if !okX || !okY {
			log.Printf("[Scoring] Warning: skipping target %q: missing or non-numeric coordinates", name)
			return true
		}
		targets = append(targets, Target{Name: name, X: x, Y: y})
		return true
	})
	return targets, nil
}

// coordinate 接受 JSON 数字或可解析为数字的字符串
func coordinate(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ParseTargets 宽松解析目标坐标，任何错误都降级为空列表（只记录警告）
func ParseTargets(raw string) []Target {
	targets, err := DecodeTargets(raw)
	if err != nil {
		log.Printf("[Scoring] Warning: %v (scoring without targets)", err)
	}
	return targets
}

// PlayLog 将放置结果序列化为带缩进的 JSON（放置日志）
func PlayLog(placements []Placement) ([]byte, error) {
	if placements == nil {
		placements = []Placement{}
	}
	data, err := json.MarshalIndent(placements, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal play log: %w", err)
	}
	return data, nil
}

// DecodePlayLog 解析放置日志 JSON（cmd/score 重新评分时使用）
func DecodePlayLog(data []byte) ([]Placement, error) {
	var placements []Placement
	if err := json.Unmarshal(data, &placements); err != nil {
		return nil, fmt.Errorf("failed to parse play log: %w", err)
	}
	return placements, nil
}

// UnmatchedNames 返回没有对应目标的放置名称（按出现顺序，去重）
func UnmatchedNames(placements []Placement, targets []Target) []string {
	known := mapset.New[string]()
	for _, t := range targets {
		known.Put(t.Name)
	}

	reported := mapset.New[string]()
	var names []string
	for _, p := range placements {
		if known.Has(p.Name) || reported.Has(p.Name) {
			continue
		}
		reported.Put(p.Name)
		names = append(names, p.Name)
	}
	return names
}
