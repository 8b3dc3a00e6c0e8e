package d3d11

import (
	"fmt"
	"math/bits"
	"strings"
)

// NumShaderStages is the number of shader stages in the Direct3D 11
// pipeline: vertex, pixel, geometry, hull, domain and compute.
const NumShaderStages = 6

// ShaderStage indexes one pipeline stage. Stage indices are dense and
// start at zero, so they can be used directly as array indices.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StagePixel
	StageGeometry
	StageHull
	StageDomain
	StageCompute
)

var stageNames = [NumShaderStages]string{"VS", "PS", "GS", "HS", "DS", "CS"}

// String returns the HLSL-style short name of the stage (VS, PS, GS, HS,
// DS, CS).
func (s ShaderStage) String() string {
	if int(s) >= NumShaderStages {
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
	return stageNames[s]
}

// Flag returns the stage as a single-bit stage set.
func (s ShaderStage) Flag() ShaderStages {
	return ShaderStages(1) << s
}

// ShaderStages is a set of pipeline stages, one bit per ShaderStage.
type ShaderStages uint8

const (
	StagesVertex ShaderStages = 1 << iota
	StagesPixel
	StagesGeometry
	StagesHull
	StagesDomain
	StagesCompute

	// StagesNone is the empty stage set.
	StagesNone ShaderStages = 0

	// StagesAllGraphics is every stage of the graphics pipeline.
	StagesAllGraphics = StagesVertex | StagesPixel | StagesGeometry | StagesHull | StagesDomain

	// StagesAll is every stage including compute.
	StagesAll = StagesAllGraphics | StagesCompute
)

// Has reports whether the set contains the given stage.
func (s ShaderStages) Has(stage ShaderStage) bool {
	return s&stage.Flag() != 0
}

// Count returns the number of stages in the set.
func (s ShaderStages) Count() int {
	return bits.OnesCount8(uint8(s))
}

// First returns the lowest-indexed stage in the set. The set must not be
// empty.
func (s ShaderStages) First() ShaderStage {
	if s == 0 {
		panic("d3d11: First called on an empty stage set")
	}
	return ShaderStage(bits.TrailingZeros8(uint8(s)))
}

// String returns the stages joined with '|', e.g. "VS|PS".
func (s ShaderStages) String() string {
	if s == 0 {
		return "none"
	}
	var b strings.Builder
	for m := uint8(s); m != 0; m &= m - 1 {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(ShaderStage(bits.TrailingZeros8(m)).String())
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (s ShaderStages) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the same
// form String produces, case-insensitively, plus the aliases "all",
// "graphics" and "none".
func (s *ShaderStages) UnmarshalText(text []byte) error {
	parsed, err := ParseShaderStages(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseShaderStages parses a '|'-separated list of stage names ("VS|PS").
// Names are case-insensitive. "all" means every stage, "graphics" every
// stage except compute, "none" or an empty string the empty set.
func ParseShaderStages(text string) (ShaderStages, error) {
	var out ShaderStages
	for _, tok := range strings.Split(text, "|") {
		switch strings.ToUpper(strings.TrimSpace(tok)) {
		case "VS", "VERTEX":
			out |= StagesVertex
		case "PS", "PIXEL":
			out |= StagesPixel
		case "GS", "GEOMETRY":
			out |= StagesGeometry
		case "HS", "HULL":
			out |= StagesHull
		case "DS", "DOMAIN":
			out |= StagesDomain
		case "CS", "COMPUTE":
			out |= StagesCompute
		case "ALL":
			out |= StagesAll
		case "GRAPHICS":
			out |= StagesAllGraphics
		case "", "NONE":
		default:
			return 0, fmt.Errorf("d3d11: unknown shader stage %q", tok)
		}
	}
	return out, nil
}
