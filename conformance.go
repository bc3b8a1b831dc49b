package kterm

// ConformanceLevel selects which device class a session identifies as via
// DA1/DA2/DA3 and which FeatureSet gate applies (spec §3 "Conformance level").
type ConformanceLevel int

const (
	ConformanceVT52 ConformanceLevel = iota
	ConformanceVT100
	ConformanceVT220
	ConformanceVT320
	ConformanceVT420
	ConformanceVT510
	ConformanceVT525
	ConformanceXTERM
	ConformanceANSISYS
)

// FeatureSet is a bitmask of optional capabilities gated by conformance level.
type FeatureSet uint32

const (
	FeatureSixel FeatureSet = 1 << iota
	FeatureReGIS
	FeatureTektronix
	FeatureKitty
	FeatureSoftFonts
	FeatureMultiSession
	FeatureMouseX10
	FeatureMouseSGR
	FeatureRectangularOps
	FeatureLeftRightMargins
)

// conformanceProfile bundles the fixed facts about one conformance level:
// its DA responses, its default mode register, and which optional feature
// bits it exposes to the dispatcher's gating checks.
type conformanceProfile struct {
	Level        ConformanceLevel
	DA1          string
	DA2          string
	DA3          string
	Features     FeatureSet
	DefaultModes ModeRegister
	ForceCGA     bool // ANSI.SYS forces the 16-color CGA palette and a fixed cell grid
}

var conformanceProfiles = map[ConformanceLevel]conformanceProfile{
	ConformanceVT52: {
		Level: ConformanceVT52,
		DA1:   "", // VT52 identifies via ESC Z -> ESC / Z (vt52.go), not CSI c
	},
	ConformanceVT100: {
		Level:        ConformanceVT100,
		DA1:          "\x1b[?1;2c",
		DA2:          "\x1b[>0;10;0c",
		DA3:          "\x1bP!|00000000\x1b\\",
		DefaultModes: DefaultModeRegister(),
	},
	ConformanceVT220: {
		Level:        ConformanceVT220,
		DA1:          "\x1b[?62;1;2;6;8;9;15;22c",
		DA2:          "\x1b[>1;10;0c",
		DA3:          "\x1bP!|00000001\x1b\\",
		Features:     FeatureSoftFonts,
		DefaultModes: DefaultModeRegister(),
	},
	ConformanceVT320: {
		Level:        ConformanceVT320,
		DA1:          "\x1b[?63;1;2;6;8;9;15;22c",
		DA2:          "\x1b[>24;10;0c",
		DA3:          "\x1bP!|00000018\x1b\\",
		Features:     FeatureSoftFonts,
		DefaultModes: DefaultModeRegister(),
	},
	ConformanceVT420: {
		Level:        ConformanceVT420,
		DA1:          "\x1b[?64;1;2;6;7;8;9;15;18;21;22c",
		DA2:          "\x1b[>41;10;0c",
		DA3:          "\x1bP!|00000029\x1b\\",
		Features:     FeatureSoftFonts | FeatureRectangularOps | FeatureLeftRightMargins,
		DefaultModes: DefaultModeRegister(),
	},
	ConformanceVT510: {
		Level:        ConformanceVT510,
		DA1:          "\x1b[?65;1;2;6;7;8;9;15;18;21;22c",
		DA2:          "\x1b[>61;10;0c",
		DA3:          "\x1bP!|0000003d\x1b\\",
		Features:     FeatureSoftFonts | FeatureRectangularOps | FeatureLeftRightMargins | FeatureSixel,
		DefaultModes: DefaultModeRegister(),
	},
	ConformanceVT525: {
		Level:        ConformanceVT525,
		DA1:          "\x1b[?65;1;2;6;7;8;9;15;18;21;22;28;29c",
		DA2:          "\x1b[>65;10;0c",
		DA3:          "\x1bP!|00000041\x1b\\",
		Features:     FeatureSoftFonts | FeatureRectangularOps | FeatureLeftRightMargins | FeatureSixel | FeatureReGIS | FeatureTektronix,
		DefaultModes: DefaultModeRegister(),
	},
	ConformanceXTERM: {
		Level: ConformanceXTERM,
		DA1:   "\x1b[?64;1;2;6;9;15;18;21;22c",
		DA2:   "\x1b[>41;366;0c",
		DA3:   "\x1bP!|5854455254\x1b\\",
		Features: FeatureSoftFonts | FeatureRectangularOps | FeatureLeftRightMargins |
			FeatureSixel | FeatureKitty | FeatureMultiSession | FeatureMouseX10 | FeatureMouseSGR,
		DefaultModes: DefaultModeRegister(),
	},
	ConformanceANSISYS: {
		Level:        ConformanceANSISYS,
		DA1:          "\x1b[?1;0c",
		DA3:          "\x1bP!|414e5349\x1b\\",
		DefaultModes: DefaultModeRegister(),
		ForceCGA:     true,
	},
}

func (p conformanceProfile) HasFeature(f FeatureSet) bool { return p.Features&f != 0 }

// profileFor returns the fixed profile for a level, defaulting to VT220 for
// an unrecognized value rather than panicking.
func profileFor(level ConformanceLevel) conformanceProfile {
	if p, ok := conformanceProfiles[level]; ok {
		return p
	}
	return conformanceProfiles[ConformanceVT220]
}

// ansiSysCellGrid is the fixed 80x25, 10x10px cell grid ANSI.SYS conformance
// forces (spec SPEC_FULL §"ANSI.SYS forces CGA palette+10x10 cell").
const (
	ansiSysRows       = 25
	ansiSysCols       = 80
	ansiSysCellWidth  = 10
	ansiSysCellHeight = 10
)
