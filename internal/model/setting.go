package model

// Setting is a key/value row for small operational state, e.g. the content
// fixtures version tag.
type Setting struct {
	BaseModel
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"size:255" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}
