package models

// Coordinates of the resolved location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location identifies the city a weather report refers to.
type Location struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// Conditions describes the current sky state.
type Conditions struct {
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Temperature carries readings plus the unit symbol for the requested units.
type Temperature struct {
	Current   float64 `json:"current"`
	FeelsLike float64 `json:"feels_like"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Unit      string  `json:"unit"`
}

// Wind speed and direction, formatted with units.
type Wind struct {
	Speed     string `json:"speed"`
	Direction string `json:"direction"`
}

// WeatherReport is the normalized weather payload. Field names and units are
// independent of the backing provider's schema.
type WeatherReport struct {
	Location    Location    `json:"location"`
	Weather     Conditions  `json:"weather"`
	Temperature Temperature `json:"temperature"`
	Humidity    string      `json:"humidity"`
	Pressure    string      `json:"pressure"`
	Visibility  string      `json:"visibility"`
	Wind        Wind        `json:"wind"`
	Clouds      string      `json:"clouds"`
	Timestamp   int64       `json:"timestamp"`
	Timezone    int         `json:"timezone"`
	Source      string      `json:"source"`
}
