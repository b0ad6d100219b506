package weather

// conditionByCode groups WMO weather codes into categories.
// Codes missing from the table fall back to CategoryClear.
var conditionByCode = map[int]Category{
	0: CategoryClear,
	1: CategoryClear,
	2: CategoryClouds, 3: CategoryClouds,
	45: CategoryHaze, 48: CategoryHaze,
	51: CategoryDrizzle, 53: CategoryDrizzle, 55: CategoryDrizzle,
	56: CategoryDrizzle, 57: CategoryDrizzle,
	61: CategoryRain, 63: CategoryRain, 65: CategoryRain,
	66: CategoryRain, 67: CategoryRain,
	71: CategorySnow, 73: CategorySnow, 75: CategorySnow,
	77: CategorySnow,
	80: CategoryRain, 81: CategoryRain, 82: CategoryRain,
	85: CategorySnow, 86: CategorySnow,
	95: CategoryThunderstorm,
	96: CategoryThunderstorm, 99: CategoryThunderstorm,
}

// MapCondition maps a weather code and day flag to a Condition.
func MapCondition(code int, isDay bool) Condition {
	category, ok := conditionByCode[code]
	if !ok {
		category = CategoryClear
	}
	return Condition{Category: category, IsDay: isDay}
}
