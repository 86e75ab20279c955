package entity

// Preferences holds the small per-user display settings record.
type Preferences struct {
	Theme         string `json:"theme"`
	FontSize      string `json:"fontSize"`
	ArticleLayout string `json:"articleLayout"`
}

// PreferencesPatch is a partial update; nil fields keep the stored value.
type PreferencesPatch struct {
	Theme         *string `json:"theme,omitempty"`
	FontSize      *string `json:"fontSize,omitempty"`
	ArticleLayout *string `json:"articleLayout,omitempty"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "system",
		FontSize:      "medium",
		ArticleLayout: "list",
	}
}

// Merge applies the patch over p and returns the result.
func (p Preferences) Merge(patch PreferencesPatch) Preferences {
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.FontSize != nil {
		p.FontSize = *patch.FontSize
	}
	if patch.ArticleLayout != nil {
		p.ArticleLayout = *patch.ArticleLayout
	}
	return p
}
