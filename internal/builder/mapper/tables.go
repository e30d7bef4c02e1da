package mapper

import "invite-builder/internal/builder/models"

// ============================================================
// Type tables
// ============================================================

// legacyTypes maps legacy component type strings (and the aliases seen in
// older templates) to element types.
var legacyTypes = map[string]models.ElementType{
	"CoverSection":             models.TypeCover,
	"HeroSection":              models.TypeHero,
	"QuoteSection":             models.TypeQuote,
	"ReligiousGreeting":        models.TypeReligiousGreeting,
	"ReligiousGreetingSection": models.TypeReligiousGreeting,
	"ProfileSection":           models.TypeProfile,
	"CoupleProfile":            models.TypeProfile,
	"EventDetails":             models.TypeEventDetails,
	"EventDetailsSection":      models.TypeEventDetails,
	"PhotoGallery":             models.TypePhotoGallery,
	"GallerySection":           models.TypePhotoGallery,
	"ImageCarousel":            models.TypeCarousel,
	"CarouselSection":          models.TypeCarousel,
	"Countdown":                models.TypeCountdown,
	"CountdownSection":         models.TypeCountdown,
	"ClosingSection":           models.TypeClosing,
	"TextBlock":                models.TypeText,
	"Text":                     models.TypeText,
	"ImageBlock":               models.TypeImage,
	"Image":                    models.TypeImage,
	"Shape":                    models.TypeShape,
}

// elementTypes is the reverse table; it names one canonical legacy type per
// element type.
var elementTypes = map[models.ElementType]string{
	models.TypeCover:             "CoverSection",
	models.TypeHero:              "HeroSection",
	models.TypeQuote:             "QuoteSection",
	models.TypeReligiousGreeting: "ReligiousGreeting",
	models.TypeProfile:           "ProfileSection",
	models.TypeEventDetails:      "EventDetails",
	models.TypePhotoGallery:      "PhotoGallery",
	models.TypeCarousel:          "ImageCarousel",
	models.TypeCountdown:         "Countdown",
	models.TypeClosing:           "ClosingSection",
	models.TypeText:              "TextBlock",
	models.TypeImage:             "ImageBlock",
	models.TypeShape:             "Shape",
}

// FallbackLegacyType is emitted for element types without a legacy twin.
const FallbackLegacyType = "BlankSection"

// ElementTypeFor maps a legacy type string; unknown strings become sections.
func ElementTypeFor(legacyType string) models.ElementType {
	if t, ok := legacyTypes[legacyType]; ok {
		return t
	}
	return models.TypeSection
}

// LegacyTypeFor maps an element type back to its legacy type string.
func LegacyTypeFor(t models.ElementType) string {
	if s, ok := elementTypes[t]; ok {
		return s
	}
	return FallbackLegacyType
}

// ============================================================
// Default sizes (375px mobile canvas)
// ============================================================

type size struct {
	width  float64
	height float64
}

var defaultSizes = map[models.ElementType]size{
	models.TypeCover:             {375, 667},
	models.TypeHero:              {375, 500},
	models.TypeQuote:             {335, 220},
	models.TypeReligiousGreeting: {335, 160},
	models.TypeProfile:           {335, 420},
	models.TypeEventDetails:      {335, 300},
	models.TypePhotoGallery:      {335, 400},
	models.TypeCarousel:          {335, 250},
	models.TypeCountdown:         {335, 140},
	models.TypeClosing:           {335, 240},
	models.TypeText:              {300, 60},
	models.TypeImage:             {300, 200},
	models.TypeShape:             {120, 120},
}

// DefaultSize returns the flow-layout size for an element type.
func DefaultSize(t models.ElementType) (float64, float64) {
	if s, ok := defaultSizes[t]; ok {
		return s.width, s.height
	}
	return 200, 100
}

// lockedTypes hold fixed-aspect media collections.
var lockedTypes = map[models.ElementType]bool{
	models.TypeCarousel:     true,
	models.TypePhotoGallery: true,
}
