package models

// BuildingInfo is display metadata for a building kind
type BuildingInfo struct {
	Label       string
	Description string
}

var buildingInfo = map[BuildingKind]BuildingInfo{
	Headquarters:        {"Headquarters", "Colony command center. Provides base power and storage."},
	SolarPanels:         {"Solar Panels", "Produces power."},
	Storage:             {"Storage", "Increases maximum storage for every resource."},
	DrillingStation:     {"Drilling Station", "Extracts water or ore from the ground."},
	ElectrolysisStation: {"Electrolysis Station", "Splits water into oxygen and hydrogen."},
	Greenhouse:          {"Greenhouse", "Grows food from water, releasing oxygen."},
	Furnace:             {"Furnace", "Smelts ore into refined metal."},
	School:              {"School", "Trains engineers, scientists and pilots."},
	Factory:             {"Factory", "Manufactures spaceship modules."},
	ResearchLabs:        {"Research Labs", "Not available yet."},
}

// Info returns display metadata for a building kind
func Info(kind BuildingKind) BuildingInfo {
	if info, ok := buildingInfo[kind]; ok {
		return info
	}
	return BuildingInfo{Label: string(kind)}
}
