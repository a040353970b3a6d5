package timeline

// Measurement keys as delivered by the /data endpoint.
const (
	KeyWaterTemperature = "Water Temperature (°C)"
	KeyDissolvedOxygen  = "Dissolved Oxygen (mg/L)"
	KeyDOSaturation     = "Dissolved Oxygen Saturation (%)"
	KeyGageHeight       = "Gage Height (ft)"
	KeyTurbidity        = "Turbidity (NTU)"
)

// CardSpec describes one summary card.
type CardSpec struct {
	Key   string
	Label string
	Unit  string
	Color string
}

// ChartSpec describes one line chart.
type ChartSpec struct {
	ID    string
	Title string
	Key   string
	Unit  string
	Color string
}

// Cards lists the summary cards in display order.
var Cards = []CardSpec{
	{Key: KeyWaterTemperature, Label: "Water Temp", Unit: "°C", Color: "#ff5722"},
	{Key: KeyDissolvedOxygen, Label: "Dissolved O₂", Unit: "mg/L", Color: "#4caf50"},
	{Key: KeyDOSaturation, Label: "DO Saturation", Unit: "%", Color: "#8bc34a"},
	{Key: KeyGageHeight, Label: "Water Level", Unit: "ft", Color: "#2196f3"},
	{Key: KeyTurbidity, Label: "Turbidity", Unit: "NTU", Color: "#795548"},
}

// Charts lists the chart views in display order.
var Charts = []ChartSpec{
	{ID: "temp-chart", Title: "Water Temperature", Key: KeyWaterTemperature, Unit: "°C", Color: "#ff5722"},
	{ID: "do-chart", Title: "Dissolved Oxygen", Key: KeyDissolvedOxygen, Unit: "mg/L", Color: "#4caf50"},
	{ID: "level-chart", Title: "Water Level", Key: KeyGageHeight, Unit: "ft", Color: "#2196f3"},
	{ID: "turbidity-chart", Title: "Turbidity", Key: KeyTurbidity, Unit: "NTU", Color: "#795548"},
}

// ChartByID looks up a chart spec.
func ChartByID(id string) (ChartSpec, bool) {
	for _, c := range Charts {
		if c.ID == id {
			return c, true
		}
	}
	return ChartSpec{}, false
}
