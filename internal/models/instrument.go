package models

import "time"

// Instrument is one entry in the admin-managed catalog. The internal id
// never leaves the API; public responses are keyed by slug.
type Instrument struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	Name string `gorm:"not null" json:"name"`

	OriginPrefix   string `json:"origin_prefix"`
	Tagline        string `json:"tagline"`
	SEOTitle       string `gorm:"column:seo_title" json:"seo_title"`
	SEODescription string `gorm:"column:seo_description" json:"seo_description"`
	AboutHTML      string `gorm:"column:about_html;type:text" json:"about_html"`
	MoodsIntro     string `json:"moods_intro"`

	ImageURL      string `json:"image_url"`
	ImageAlt      string `json:"image_alt"`
	AudioTeaser   string `json:"audio_teaser"`
	Featured      bool   `json:"featured"`
	FeaturedImage string `json:"featured_image"`

	DisplayOrder int  `gorm:"index" json:"display_order"`
	PageReady    bool `gorm:"default:true" json:"page_ready"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Videos []InstrumentVideo `gorm:"constraint:OnDelete:CASCADE" json:"videos"`
	Moods  []InstrumentMood  `gorm:"constraint:OnDelete:CASCADE" json:"moods"`
}

func (Instrument) TableName() string { return "instruments" }

// InstrumentVideo is an ordered child of an Instrument. DisplayOrder is
// always the index of the video in the array the admin submitted.
type InstrumentVideo struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	InstrumentID uint   `gorm:"index;not null" json:"-"`
	Label        string `json:"label"`
	VideoType    string `gorm:"column:video_type" json:"video_type"`
	Src          string `json:"src"`
	Poster       string `json:"poster"`
	AspectRatio  string `json:"aspect_ratio"`
	DisplayOrder int    `json:"-"`
}

func (InstrumentVideo) TableName() string { return "instrument_videos" }

// InstrumentMood is an ordered child of an Instrument holding one audio clip.
type InstrumentMood struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	InstrumentID uint   `gorm:"index;not null" json:"-"`
	Label        string `json:"label"`
	AudioFile    string `gorm:"column:audio_file" json:"audio_file"`
	DisplayOrder int    `json:"-"`
}

func (InstrumentMood) TableName() string { return "instrument_moods" }
