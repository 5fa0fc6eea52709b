package services

// Itemized ("standard" mode) entries. Each variant gets its own calculation
// function instead of one generic calculator: the cost semantics differ per
// kind (per-unit rates vs already-total amounts) and unifying them would
// hide that divergence.

// ManpowerItem is a crew assignment: a headcount working a number of hours
// against a labor record. Hours are total hours per worker.
type ManpowerItem struct {
	ID       string
	LaborID  string
	Quantity float64
	Hours    float64
}

// Asset is an installed or removed asset. UnitCost is per unit; RemovalCost
// is a lump sum for the whole row, not per unit.
type Asset struct {
	ID          string
	Name        string
	Description string
	Quantity    float64
	UnitCost    float64
	RemovalCost float64
}

// MaterialItem is a bulk material purchase priced per unit.
type MaterialItem struct {
	ID       string
	Category string
	Item     string
	Unit     string
	UnitRate float64
	Quantity float64
	Notes    string
}

// Subcontractor carries an already-total cost for a scoped package of work.
type Subcontractor struct {
	ID        string
	Name      string
	Scope     string
	TotalCost float64
}

// SupervisionRole is supervision staffing costed by the hour.
type SupervisionRole struct {
	ID      string
	LaborID string
	Hours   float64
}

// LogisticsItem carries an already-total logistics cost.
type LogisticsItem struct {
	ID          string
	Description string
	TotalCost   float64
}

// ItemizedInputs groups every standard-mode entry collection for a project.
type ItemizedInputs struct {
	Manpower       []ManpowerItem
	Assets         []Asset
	Materials      []MaterialItem
	Subcontractors []Subcontractor
	Supervision    []SupervisionRole
	Logistics      []LogisticsItem
}

// CalcManpowerCost prices a crew line: headcount x hours x effective rate.
// Itemized manpower uses the 173-hour month, not the BOQ 208-hour month.
func CalcManpowerCost(m ManpowerItem, labor LaborTable) float64 {
	if m.LaborID == "" || m.Hours <= 0 {
		return 0
	}
	rate := EffectiveHourlyRate(labor[m.LaborID], CrewMonthlyHours)
	return sanitize(m.Quantity) * sanitize(m.Hours) * rate
}

// CalcAssetCost prices an asset row. Removal cost is already a total and is
// added once, unlike the per-unit unit cost.
func CalcAssetCost(a Asset) float64 {
	return sanitize(a.Quantity)*sanitize(a.UnitCost) + sanitize(a.RemovalCost)
}

// CalcMaterialCost prices a material row per unit.
func CalcMaterialCost(m MaterialItem) float64 {
	return sanitize(m.Quantity) * sanitize(m.UnitRate)
}

// CalcSubcontractorCost passes the already-total amount through.
func CalcSubcontractorCost(s Subcontractor) float64 {
	return sanitize(s.TotalCost)
}

// CalcSupervisionCost prices a supervision role against the 160-hour month
// used for itemized supervision.
func CalcSupervisionCost(s SupervisionRole, labor LaborTable) float64 {
	if s.LaborID == "" || s.Hours <= 0 {
		return 0
	}
	rate := EffectiveHourlyRate(labor[s.LaborID], SupervisionMonthlyHours)
	return sanitize(s.Hours) * rate
}

// CalcLogisticsCost passes the already-total amount through.
func CalcLogisticsCost(l LogisticsItem) float64 {
	return sanitize(l.TotalCost)
}
