package engine

import (
	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

// anchorCategories maps each centric preference to the categories that can
// satisfy it.
var anchorCategories = map[assessment.AnchorKind][]catalog.Category{
	assessment.AnchorDocCentric:   {catalog.CategoryDocumentation},
	assessment.AnchorDevCentric:   {catalog.CategoryDevelopment},
	assessment.AnchorCommsCentric: {catalog.CategoryCommunication},
}

// ResolveAnchor finds the current tool that anchors the recommendation, if
// any. Centric preferences match the first current tool in the preference's
// category set; an explicit "other" matches by name or alias. No preference
// and no match both yield nil, which is a valid terminal state.
func ResolveAnchor(pref assessment.AnchorPreference, current []catalog.Tool) *catalog.Tool {
	switch pref.Kind {
	case assessment.AnchorNone, "":
		return nil
	case assessment.AnchorExplicitOther:
		for i := range current {
			if current[i].MatchesName(pref.OtherName) {
				return &current[i]
			}
		}
		return nil
	default:
		cats, ok := anchorCategories[pref.Kind]
		if !ok {
			return nil
		}
		for i := range current {
			for _, cat := range cats {
				if current[i].InCategory(cat) {
					return &current[i]
				}
			}
		}
		return nil
	}
}
