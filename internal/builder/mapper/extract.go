package mapper

import (
	"invite-builder/internal/builder/models"
)

// ============================================================
// Content extractors
// ============================================================

// Each extractor lists the legacy field name first and the canonical one
// after it, so bags produced by Renderer migrate back to the same content.
type extractor func(bag models.ComponentData) models.Content

var extractors = map[models.ElementType]extractor{
	models.TypeText: func(bag models.ComponentData) models.Content {
		return models.TextContent{Text: text(bag, "text", "content", "body")}
	},
	models.TypeImage: func(bag models.ComponentData) models.Content {
		return models.ImageContent{
			URL: text(bag, "src", "imageUrl", "url"),
			Alt: text(bag, "alt", "caption"),
		}
	},
	models.TypeShape: func(bag models.ComponentData) models.Content {
		return models.ShapeContent{Shape: text(bag, "shapeType", "shape")}
	},
	models.TypeCountdown: func(bag models.ComponentData) models.Content {
		return models.CountdownContent{
			TargetDate: text(bag, "targetDate", "date", "eventDate"),
			Label:      text(bag, "title", "label"),
		}
	},
	models.TypeCarousel: func(bag models.ComponentData) models.Content {
		interval, _ := number(bag, "interval")
		return models.CarouselContent{
			Images:   list(bag, "slides", "images"),
			Autoplay: flag(bag, "autoPlay", "autoplay"),
			Interval: interval,
		}
	},
	models.TypeCover: func(bag models.ComponentData) models.Content {
		return models.CoverContent{
			Title:    text(bag, "coupleNames", "title"),
			Subtitle: text(bag, "subtitle", "tagline"),
			Date:     text(bag, "weddingDate", "date"),
			ImageURL: text(bag, "backgroundImage", "imageUrl"),
		}
	},
	models.TypeHero: func(bag models.ComponentData) models.Content {
		return models.HeroContent{
			Title:    text(bag, "heading", "title"),
			Subtitle: text(bag, "subheading", "subtitle"),
			ImageURL: text(bag, "image", "imageUrl"),
		}
	},
	models.TypeQuote: func(bag models.ComponentData) models.Content {
		return models.QuoteContent{
			Quote:    text(bag, "quoteText", "quote"),
			Author:   text(bag, "source", "author"),
			ImageURL: text(bag, "image", "imageUrl"),
		}
	},
	models.TypeReligiousGreeting: func(bag models.ComponentData) models.Content {
		return models.GreetingContent{
			Greeting: text(bag, "opening", "greeting"),
			Text:     text(bag, "verse", "text"),
		}
	},
	models.TypeProfile: func(bag models.ComponentData) models.Content {
		return models.ProfileContent{
			Name:      text(bag, "fullName", "name"),
			Role:      text(bag, "title", "role"),
			Bio:       text(bag, "description", "bio"),
			ImageURL:  text(bag, "photo", "imageUrl"),
			Instagram: text(bag, "instagram"),
		}
	},
	models.TypeEventDetails: func(bag models.ComponentData) models.Content {
		return models.EventDetailsContent{
			EventDate:    text(bag, "eventDate", "date"),
			EventTime:    text(bag, "eventTime", "time"),
			VenueName:    text(bag, "venueName", "venue"),
			VenueAddress: text(bag, "venueAddress", "address"),
			MapURL:       text(bag, "mapsUrl", "mapUrl"),
		}
	},
	models.TypePhotoGallery: func(bag models.ComponentData) models.Content {
		return models.GalleryContent{Images: list(bag, "photos", "images")}
	},
	models.TypeClosing: func(bag models.ComponentData) models.Content {
		return models.ClosingContent{
			Message:   text(bag, "closingText", "message"),
			Signature: text(bag, "from", "signature"),
		}
	},
}

// extractContent builds the typed payload for t. Types without an extractor
// pass through the bag's "content" field, or the bag itself minus geometry
// and style keys.
func extractContent(t models.ElementType, bag models.ComponentData) models.Content {
	if fn, ok := extractors[t]; ok {
		c := fn(bag)
		if len(c.Fields()) == 0 {
			return nil
		}
		return c
	}
	return passThrough(bag)
}

func passThrough(bag models.ComponentData) models.Content {
	var src map[string]any
	switch v := bag["content"].(type) {
	case map[string]any:
		src = v
	case nil:
		src = make(map[string]any, len(bag))
		for k, val := range bag {
			if geometryKeys[k] || models.IsStyleKey(k) {
				continue
			}
			src[k] = val
		}
	default:
		src = map[string]any{"content": v}
	}

	var out models.SectionContent
	extra := make(map[string]any, len(src))
	for k, v := range src {
		if k == "children" {
			if ids := list(src, "children"); ids != nil {
				out.Children = ids
				continue
			}
		}
		extra[k] = v
	}
	if len(extra) > 0 {
		out.Extra = extra
	}
	if len(out.Fields()) == 0 {
		return nil
	}
	return out
}

// extractStyles copies whitelisted presentation keys; nil when none present.
func extractStyles(bag models.ComponentData) models.Styles {
	var styles models.Styles
	for _, key := range models.StyleKeys {
		v, ok := bag[key]
		if !ok || v == nil {
			continue
		}
		if styles == nil {
			styles = models.Styles{}
		}
		styles[key] = v
	}
	return styles
}
