package constants

// Survey lifecycle states.
const (
	SurveyDraft  = "draft"
	SurveyOpen   = "open"
	SurveyReady  = "ready"
	SurveyClosed = "closed"
)

const (
	AudienceDirected = "directed"
	AudienceOpen     = "open"
)

const DefaultDashboardLayout = "layout-1"

// DashboardLayoutSlots is how many widgets each layout can show.
var DashboardLayoutSlots = map[string]int{
	"layout-1": 1,
	"layout-2": 2,
	"layout-3": 3,
	"layout-4": 4,
}
