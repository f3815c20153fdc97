package integrations

// Quality tiers an integration edge. Higher tiers mean deeper, more reliable links.
type Quality string

const (
	QualityNative      Quality = "native"
	QualityDeep        Quality = "deep"
	QualityBasic       Quality = "basic"
	QualityWebhookOnly Quality = "webhook-only"
	QualityZapierOnly  Quality = "zapier-only"
)

// Weight maps a quality tier to its fixed numeric weight.
func (q Quality) Weight() float64 {
	switch q {
	case QualityNative:
		return 100
	case QualityDeep:
		return 80
	case QualityBasic:
		return 50
	case QualityWebhookOnly:
		return 30
	case QualityZapierOnly:
		return 15
	default:
		return 0
	}
}

// Edge is a directed integration relation between two tools.
type Edge struct {
	FromTool string  `json:"fromTool" yaml:"from"`
	ToTool   string  `json:"toTool" yaml:"to"`
	Quality  Quality `json:"quality" yaml:"quality"`
}

// Involves reports whether the edge touches the given tool in either direction.
func (e Edge) Involves(toolID string) bool {
	return e.FromTool == toolID || e.ToTool == toolID
}

// Other returns the opposite endpoint, or "" if the edge does not involve toolID.
func (e Edge) Other(toolID string) string {
	switch toolID {
	case e.FromTool:
		return e.ToTool
	case e.ToTool:
		return e.FromTool
	default:
		return ""
	}
}

// Recipe is a directed trigger→action automation relation between two tools.
// Recipes feed synergy-chain scoring only, never integration coverage.
type Recipe struct {
	ID          string `json:"id" yaml:"id"`
	TriggerTool string `json:"triggerTool" yaml:"trigger"`
	ActionTool  string `json:"actionTool" yaml:"action"`
	Name        string `json:"name,omitempty" yaml:"name"`
}

// Other returns the opposite endpoint, or "" if the recipe does not involve toolID.
func (r Recipe) Other(toolID string) string {
	switch toolID {
	case r.TriggerTool:
		return r.ActionTool
	case r.ActionTool:
		return r.TriggerTool
	default:
		return ""
	}
}
