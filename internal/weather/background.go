package weather

// BackgroundKind tells a renderer how to show a Background asset.
type BackgroundKind string

const (
	BackgroundImage BackgroundKind = "image"
	BackgroundVideo BackgroundKind = "video"
)

// Background describes the decorative asset behind the current conditions.
type Background struct {
	Asset string         `json:"asset"`
	Kind  BackgroundKind `json:"kind"`
}

// DefaultBackground is shown when there is no condition to render.
var DefaultBackground = Background{Asset: "video1.mp4", Kind: BackgroundVideo}

func image(asset string) Background {
	return Background{Asset: asset, Kind: BackgroundImage}
}

// BackgroundFor selects the background for a condition. A nil condition
// yields DefaultBackground.
func BackgroundFor(c *Condition) Background {
	if c == nil {
		return DefaultBackground
	}

	switch c.Category {
	case CategoryThunderstorm:
		return image("Thunderstorm.gif")
	case CategoryDrizzle, CategoryRain:
		return image("Rain.gif")
	case CategorySnow:
		return image("Snow.gif")
	case CategoryClear:
		if c.IsDay {
			return image("ClearDay.gif")
		}
		return image("ClearNight.gif")
	case CategoryClouds:
		if c.IsDay {
			return image("CloudsDay.gif")
		}
		return image("CloudsNight.gif")
	case CategoryHaze:
		return image("Haze.gif")
	default:
		return DefaultBackground
	}
}
