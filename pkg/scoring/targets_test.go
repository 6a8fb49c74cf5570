package scoring

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeTargets(t *testing.T) {
	raw := `[{"name":"eye","x":100,"y":100},{"name":"nose","x":"120.5","y":"80"}]`

	targets, err := DecodeTargets(raw)
	if err != nil {
		t.Fatalf("DecodeTargets() error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0] != (Target{Name: "eye", X: 100, Y: 100}) {
		t.Errorf("targets[0] = %+v", targets[0])
	}
	if targets[1] != (Target{Name: "nose", X: 120.5, Y: 80}) {
		t.Errorf("targets[1] = %+v", targets[1])
	}
}

// TestDecodeTargetsDegraded 空字符串和非法 JSON 都得到空列表
func TestDecodeTargetsDegraded(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"empty", "", false},
		{"whitespace", "   \n", false},
		{"syntax error", `[{"name":"eye",`, true},
		{"not json", "hello", true},
		{"object", `{"name":"eye"}`, true},
		{"number", `42`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := DecodeTargets(tt.raw)
			if targets == nil || len(targets) != 0 {
				t.Errorf("expected empty non-nil list, got %#v", targets)
			}
			if tt.wantErr && !errors.Is(err, ErrTargetParse) {
				t.Errorf("expected ErrTargetParse, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDecodeTargetsSkipsNonObjects(t *testing.T) {
	targets, err := DecodeTargets(`[1, "x", {"name":"mouth","x":5,"y":6}, null]`)
	if err != nil {
		t.Fatalf("DecodeTargets() error: %v", err)
	}
	if len(targets) != 1 || targets[0].Name != "mouth" {
		t.Errorf("got %+v", targets)
	}
}

// TestDecodeTargetsCoordinates 坐标缺失或非数字的元素被跳过，不会被当作原点
func TestDecodeTargetsCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantNames []string
	}{
		{"数字字符串", `[{"name":"eye","x":" 12.5 ","y":"-3"}]`, []string{"eye"}},
		{"x 不是数字", `[{"name":"eye","x":"abc","y":10},{"name":"nose","x":1,"y":2}]`, []string{"nose"}},
		{"缺少 y", `[{"name":"eye","x":10}]`, nil},
		{"x 为 null", `[{"name":"eye","x":null,"y":10}]`, nil},
		{"x 为布尔", `[{"name":"eye","x":true,"y":10}]`, nil},
		{"坐标为对象", `[{"name":"eye","x":{"v":1},"y":10}]`, nil},
		{"零坐标保留", `[{"name":"mouth","x":0,"y":0}]`, []string{"mouth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := DecodeTargets(tt.raw)
			if err != nil {
				t.Fatalf("DecodeTargets() error: %v", err)
			}
			var names []string
			for _, target := range targets {
				names = append(names, target.Name)
			}
			if strings.Join(names, ",") != strings.Join(tt.wantNames, ",") {
				t.Errorf("names = %v, want %v", names, tt.wantNames)
			}
		})
	}
}

func TestDecodeTargetsNumericStrings(t *testing.T) {
	targets, err := DecodeTargets(`[{"name":"eye","x":" 12.5 ","y":"-3"}]`)
	if err != nil {
		t.Fatalf("DecodeTargets() error: %v", err)
	}
	if len(targets) != 1 || targets[0] != (Target{Name: "eye", X: 12.5, Y: -3}) {
		t.Errorf("got %+v", targets)
	}
}

func TestParseTargetsNeverFails(t *testing.T) {
	if got := ParseTargets("{broken"); len(got) != 0 {
		t.Errorf("ParseTargets() = %+v, want empty", got)
	}
}

func TestPlayLogFormat(t *testing.T) {
	data, err := PlayLog([]Placement{{Name: "eye", X: 103, Y: 104.5}})
	if err != nil {
		t.Fatalf("PlayLog() error: %v", err)
	}

	want := "[\n  {\n    \"name\": \"eye\",\n    \"x\": 103,\n    \"y\": 104.5\n  }\n]"
	if string(data) != want {
		t.Errorf("PlayLog() =\n%s\nwant\n%s", data, want)
	}

	back, err := DecodePlayLog(data)
	if err != nil {
		t.Fatalf("DecodePlayLog() error: %v", err)
	}
	if len(back) != 1 || back[0].Name != "eye" {
		t.Errorf("DecodePlayLog() = %+v", back)
	}
}

func TestPlayLogEmpty(t *testing.T) {
	data, err := PlayLog(nil)
	if err != nil {
		t.Fatalf("PlayLog() error: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("PlayLog(nil) = %s, want []", data)
	}
}

func TestUnmatchedNames(t *testing.T) {
	targets := []Target{{Name: "eye"}}
	placements := []Placement{{Name: "eye"}, {Name: "nose"}, {Name: "mouth"}, {Name: "nose"}}

	got := UnmatchedNames(placements, targets)
	if strings.Join(got, ",") != "nose,mouth" {
		t.Errorf("UnmatchedNames() = %v", got)
	}
}
