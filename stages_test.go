package d3d11

import "testing"

func TestShaderStageString(t *testing.T) {
	tests := []struct {
		stage ShaderStage
		want  string
	}{
		{StageVertex, "VS"},
		{StagePixel, "PS"},
		{StageGeometry, "GS"},
		{StageHull, "HS"},
		{StageDomain, "DS"},
		{StageCompute, "CS"},
		{ShaderStage(9), "stage(9)"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("ShaderStage(%d).String() = %q, want %q", uint8(tt.stage), got, tt.want)
		}
	}
}

func TestShaderStageFlag(t *testing.T) {
	for s := ShaderStage(0); s < NumShaderStages; s++ {
		flag := s.Flag()
		if flag.Count() != 1 {
			t.Errorf("%s.Flag() has %d bits set, want 1", s, flag.Count())
		}
		if !flag.Has(s) {
			t.Errorf("%s.Flag() does not contain %s", s, s)
		}
		if flag.First() != s {
			t.Errorf("%s.Flag().First() = %s, want %s", s, flag.First(), s)
		}
	}
}

func TestShaderStagesHasCount(t *testing.T) {
	set := StagesVertex | StagesPixel
	if !set.Has(StageVertex) || !set.Has(StagePixel) {
		t.Error("VS|PS should contain both VS and PS")
	}
	if set.Has(StageCompute) {
		t.Error("VS|PS should not contain CS")
	}
	if set.Count() != 2 {
		t.Errorf("(VS|PS).Count() = %d, want 2", set.Count())
	}
	if StagesAll.Count() != NumShaderStages {
		t.Errorf("StagesAll.Count() = %d, want %d", StagesAll.Count(), NumShaderStages)
	}
	if StagesAllGraphics.Has(StageCompute) {
		t.Error("StagesAllGraphics should not contain CS")
	}
}

func TestShaderStagesFirstEmptyPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for First on empty set")
		}
	}()
	StagesNone.First()
}

func TestShaderStagesString(t *testing.T) {
	tests := []struct {
		set  ShaderStages
		want string
	}{
		{StagesNone, "none"},
		{StagesVertex, "VS"},
		{StagesVertex | StagesPixel, "VS|PS"},
		{StagesPixel | StagesCompute, "PS|CS"},
		{StagesAll, "VS|PS|GS|HS|DS|CS"},
	}
	for _, tt := range tests {
		if got := tt.set.String(); got != tt.want {
			t.Errorf("ShaderStages(%#x).String() = %q, want %q", uint8(tt.set), got, tt.want)
		}
	}
}

func TestParseShaderStages(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    ShaderStages
		wantErr bool
	}{
		{"single", "VS", StagesVertex, false},
		{"pair", "VS|PS", StagesVertex | StagesPixel, false},
		{"lowercase", "vs|cs", StagesVertex | StagesCompute, false},
		{"long names", "vertex|pixel", StagesVertex | StagesPixel, false},
		{"spaces", " VS | PS ", StagesVertex | StagesPixel, false},
		{"all", "all", StagesAll, false},
		{"graphics", "graphics", StagesAllGraphics, false},
		{"none", "none", StagesNone, false},
		{"empty", "", StagesNone, false},
		{"unknown", "VS|XX", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShaderStages(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseShaderStages(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseShaderStages(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestShaderStagesTextRoundTrip(t *testing.T) {
	for _, set := range []ShaderStages{StagesVertex, StagesVertex | StagesPixel, StagesAll} {
		text, err := set.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s) failed: %v", set, err)
		}
		var back ShaderStages
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if back != set {
			t.Errorf("round trip of %s produced %s", set, back)
		}
	}
}
