package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeFileInput
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
)

type ActionType int

const (
	ActionAdd ActionType = iota
	ActionDismiss
	ActionClear
	ActionRestyle
)

type SegmentPolicy int

const (
	SegmentWords SegmentPolicy = iota
	SegmentChars
	SegmentChunks
)

type StyleKind int

const (
	StyleStroke StyleKind = iota
	StyleGradient
	StyleShadow
	StyleDistort
	StyleChip
	StyleOutline
	numStyleKinds
)

func (k StyleKind) String() string {
	switch k {
	case StyleStroke:
		return "stroke"
	case StyleGradient:
		return "gradient"
	case StyleShadow:
		return "shadow"
	case StyleDistort:
		return "distort"
	case StyleChip:
		return "chip"
	case StyleOutline:
		return "outline"
	}
	return "unknown"
}

const (
	// Pixel size of one terminal cell in canvas space
	cellWidth  = 8.0
	cellHeight = 16.0

	panelHeight = 2 // input line + status line

	defaultFPS               = 30
	defaultMaxSpeed          = 1.5
	defaultMargin            = 4.0
	defaultPlacementAttempts = 40
	defaultExportScale       = 2.0

	maxRotation       = 30.0 // degrees, either direction
	maxSkew           = 10.0
	minDistortSkew    = 12.0
	minScale          = 0.8
	maxScale          = 1.3
	repulsionStrength = 0.5
	repulsionImpulse  = 0.15

	seedInterval = 300 // ms between seed phrases
)
