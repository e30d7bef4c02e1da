package models

import (
	"bytes"
	"encoding/json"
)

// ============================================================
// Content union
// ============================================================

// Content is the semantic payload of an element. Each element type has its
// own variant; SectionContent doubles as the extension bag for anything
// the typed variants do not cover.
type Content interface {
	// Fields flattens the variant into canonical keys (empty values omitted).
	Fields() map[string]any
}

// DecodeContent decodes raw JSON into the variant for t. Unknown types land
// in SectionContent so nothing is dropped.
func DecodeContent(t ElementType, raw json.RawMessage) (Content, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch t {
	case TypeText:
		return decodeAs[TextContent](raw)
	case TypeImage:
		return decodeAs[ImageContent](raw)
	case TypeShape:
		return decodeAs[ShapeContent](raw)
	case TypeCountdown:
		return decodeAs[CountdownContent](raw)
	case TypeCarousel:
		return decodeAs[CarouselContent](raw)
	case TypeCover:
		return decodeAs[CoverContent](raw)
	case TypeHero:
		return decodeAs[HeroContent](raw)
	case TypeQuote:
		return decodeAs[QuoteContent](raw)
	case TypeReligiousGreeting:
		return decodeAs[GreetingContent](raw)
	case TypeProfile:
		return decodeAs[ProfileContent](raw)
	case TypeEventDetails:
		return decodeAs[EventDetailsContent](raw)
	case TypePhotoGallery:
		return decodeAs[GalleryContent](raw)
	case TypeClosing:
		return decodeAs[ClosingContent](raw)
	default:
		return decodeAs[SectionContent](raw)
	}
}

// ConvertContent re-reads c as the variant for t, keeping the keys both
// variants share. A nil c stays nil; when the values do not fit the new
// variant, its zero value is returned.
func ConvertContent(c Content, t ElementType) Content {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(c.Fields())
	if err == nil {
		if out, err := DecodeContent(t, raw); err == nil {
			return out
		}
	}
	out, _ := DecodeContent(t, json.RawMessage("{}"))
	return out
}

func decodeAs[T Content](raw json.RawMessage) (Content, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ============================================================
// Variants
// ============================================================

type TextContent struct {
	Text string `json:"text,omitempty"`
}

func (c TextContent) Fields() map[string]any {
	return compact(map[string]any{"text": c.Text})
}

type ImageContent struct {
	URL string `json:"url,omitempty"`
	Alt string `json:"alt,omitempty"`
}

func (c ImageContent) Fields() map[string]any {
	return compact(map[string]any{"url": c.URL, "alt": c.Alt})
}

type ShapeContent struct {
	Shape string `json:"shape,omitempty"` // rectangle, circle, line
}

func (c ShapeContent) Fields() map[string]any {
	return compact(map[string]any{"shape": c.Shape})
}

type CountdownContent struct {
	TargetDate string `json:"targetDate,omitempty"`
	Label      string `json:"label,omitempty"`
}

func (c CountdownContent) Fields() map[string]any {
	return compact(map[string]any{"targetDate": c.TargetDate, "label": c.Label})
}

type CarouselContent struct {
	Images   []string `json:"images,omitempty"`
	Autoplay bool     `json:"autoplay,omitempty"`
	Interval float64  `json:"interval,omitempty"` // seconds
}

func (c CarouselContent) Fields() map[string]any {
	return compact(map[string]any{"images": c.Images, "autoplay": c.Autoplay, "interval": c.Interval})
}

type CoverContent struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Date     string `json:"date,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (c CoverContent) Fields() map[string]any {
	return compact(map[string]any{"title": c.Title, "subtitle": c.Subtitle, "date": c.Date, "imageUrl": c.ImageURL})
}

type HeroContent struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (c HeroContent) Fields() map[string]any {
	return compact(map[string]any{"title": c.Title, "subtitle": c.Subtitle, "imageUrl": c.ImageURL})
}

type QuoteContent struct {
	Quote    string `json:"quote,omitempty"`
	Author   string `json:"author,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (c QuoteContent) Fields() map[string]any {
	return compact(map[string]any{"quote": c.Quote, "author": c.Author, "imageUrl": c.ImageURL})
}

type GreetingContent struct {
	Greeting string `json:"greeting,omitempty"`
	Text     string `json:"text,omitempty"`
}

func (c GreetingContent) Fields() map[string]any {
	return compact(map[string]any{"greeting": c.Greeting, "text": c.Text})
}

type ProfileContent struct {
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	Bio       string `json:"bio,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

func (c ProfileContent) Fields() map[string]any {
	return compact(map[string]any{
		"name":      c.Name,
		"role":      c.Role,
		"bio":       c.Bio,
		"imageUrl":  c.ImageURL,
		"instagram": c.Instagram,
	})
}

type EventDetailsContent struct {
	EventDate    string `json:"eventDate,omitempty"`
	EventTime    string `json:"eventTime,omitempty"`
	VenueName    string `json:"venueName,omitempty"`
	VenueAddress string `json:"venueAddress,omitempty"`
	MapURL       string `json:"mapUrl,omitempty"`
}

func (c EventDetailsContent) Fields() map[string]any {
	return compact(map[string]any{
		"eventDate":    c.EventDate,
		"eventTime":    c.EventTime,
		"venueName":    c.VenueName,
		"venueAddress": c.VenueAddress,
		"mapUrl":       c.MapURL,
	})
}

type GalleryContent struct {
	Images []string `json:"images,omitempty"`
}

func (c GalleryContent) Fields() map[string]any {
	return compact(map[string]any{"images": c.Images})
}

type ClosingContent struct {
	Message   string `json:"message,omitempty"`
	Signature string `json:"signature,omitempty"`
}

func (c ClosingContent) Fields() map[string]any {
	return compact(map[string]any{"message": c.Message, "signature": c.Signature})
}

// SectionContent is the generic container payload: ordered child element
// ids plus whatever keys the source carried.
type SectionContent struct {
	Children []string
	Extra    map[string]any
}

func (c SectionContent) Fields() map[string]any {
	out := make(map[string]any, len(c.Extra)+1)
	for k, v := range c.Extra {
		out[k] = v
	}
	if len(c.Children) > 0 {
		out["children"] = c.Children
	}
	return out
}

func (c SectionContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Fields())
}

func (c *SectionContent) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*c = SectionContent{}
	if raw, ok := m["children"]; ok {
		if list, ok := raw.([]any); ok {
			for _, item := range list {
				if id, ok := item.(string); ok {
					c.Children = append(c.Children, id)
				}
			}
			delete(m, "children")
		}
	}
	if len(m) > 0 {
		c.Extra = m
	}
	return nil
}

// compact drops zero values so flattened bags carry only what was set.
func compact(m map[string]any) map[string]any {
	for k, v := range m {
		switch val := v.(type) {
		case string:
			if val == "" {
				delete(m, k)
			}
		case bool:
			if !val {
				delete(m, k)
			}
		case float64:
			if val == 0 {
				delete(m, k)
			}
		case []string:
			if len(val) == 0 {
				delete(m, k)
			}
		case nil:
			delete(m, k)
		}
	}
	return m
}
