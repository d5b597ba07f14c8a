package osenc

// UsageBand is the navigational purpose a cell was compiled for, encoded
// as the third character of its name: "SE3AQ001" is band 3.
type UsageBand int

const (
	UsageBandUnknown UsageBand = iota
	UsageBandOverview
	UsageBandGeneral
	UsageBandCoastal
	UsageBandApproach
	UsageBandHarbour
	UsageBandBerthing
)

// bands holds the display name and the compilation scale denominators of
// each band. Zero leaves the range open on that side.
var bands = [...]struct {
	name     string
	min, max int
}{
	UsageBandUnknown:  {"Unknown", 0, 0},
	UsageBandOverview: {"Overview", 1500000, 0},
	UsageBandGeneral:  {"General", 350000, 1500000},
	UsageBandCoastal:  {"Coastal", 90000, 350000},
	UsageBandApproach: {"Approach", 22000, 90000},
	UsageBandHarbour:  {"Harbour", 4000, 22000},
	UsageBandBerthing: {"Berthing", 0, 4000},
}

// UsageBandFromCellName reads the band digit of a cell name.
func UsageBandFromCellName(name string) UsageBand {
	if len(name) < 3 || name[2] < '1' || name[2] > '6' {
		return UsageBandUnknown
	}
	return UsageBand(name[2] - '0')
}

func (ub UsageBand) valid() bool {
	return ub > UsageBandUnknown && int(ub) < len(bands)
}

func (ub UsageBand) String() string {
	if !ub.valid() {
		return bands[UsageBandUnknown].name
	}
	return bands[ub].name
}

// ScaleRange returns the scale denominators the band covers.
func (ub UsageBand) ScaleRange() (min, max int) {
	if !ub.valid() {
		return 0, 0
	}
	return bands[ub].min, bands[ub].max
}
