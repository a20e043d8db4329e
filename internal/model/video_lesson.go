package model

// VideoLesson is a recorded lesson linked from remediation content by concept tag.
// swagger:model VideoLesson
type VideoLesson struct {
	UUIDBase
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	URL          string `gorm:"size:512;not null" json:"url"`
	ThumbnailURL string `gorm:"size:512" json:"thumbnailUrl,omitempty"`
	ConceptTag   string `gorm:"size:100;index" json:"conceptTag,omitempty"`
	Duration     int    `gorm:"default:0" json:"duration"` // seconds
}

func (VideoLesson) TableName() string {
	return "video_lessons"
}
