package models

// Museum represents a single insect museum, with its display fields, parallel
// kana readings used for phonetic search, and optional coordinates.
type Museum struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	URL            string   `json:"url,omitempty"`
	FacebookURL    string   `json:"facebook_url,omitempty"`
	XURL           string   `json:"x_url,omitempty"`
	InstagramURL   string   `json:"instagram_url,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	Area           string   `json:"area,omitempty"`
	NameKana       string   `json:"name_kana,omitempty"`
	Prefecture     string   `json:"prefecture,omitempty"`
	AddressKana    string   `json:"address_kana,omitempty"`
	AreaKana       string   `json:"area_kana,omitempty"`
	PrefectureKana string   `json:"prefecture_kana,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
// Records never carry only one of the two.
func (m Museum) HasCoordinates() bool {
	return m.Latitude != nil && m.Longitude != nil
}

// SearchFields returns the candidate text fields a search query is matched
// against. Missing fields are empty strings, which never match a non-empty
// token.
func (m Museum) SearchFields() []string {
	return []string{
		m.Name,
		m.NameKana,
		m.Address,
		m.AddressKana,
		m.Area,
		m.AreaKana,
		m.Prefecture,
		m.PrefectureKana,
	}
}
