package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/turtlemeow87-design/tradscendence-site/internal/models"
)

var errSlugTaken = errors.New("slug already exists")

// InstrumentHandler serves the public catalog and the admin CRUD surface.
type InstrumentHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewInstrumentHandler(db *gorm.DB, log *zap.Logger) *InstrumentHandler {
	return &InstrumentHandler{db: db, log: log}
}

// catalogEntry is the public list projection. It deliberately omits the
// internal id and the heavy page fields.
type catalogEntry struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	OriginPrefix  string `json:"origin_prefix"`
	AudioTeaser   string `json:"audio_teaser"`
	PageReady     bool   `json:"page_ready"`
	DisplayOrder  int    `json:"display_order"`
	Featured      bool   `json:"featured"`
	FeaturedImage string `json:"featured_image"`
	ImageURL      string `json:"image_url"`
	Tagline       string `json:"tagline"`
}

// featuredEntry is the slimmer projection for the homepage carousel.
type featuredEntry struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	FeaturedImage string `json:"featured_image"`
	ImageURL      string `json:"image_url"`
	AudioTeaser   string `json:"audio_teaser"`
}

// List handles GET /api/instruments.
func (h *InstrumentHandler) List(c *gin.Context) {
	var entries []catalogEntry
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.Instrument{}).
		Select("slug, name, origin_prefix, audio_teaser, page_ready, display_order, featured, featured_image, image_url, tagline").
		Order("display_order ASC").
		Find(&entries).Error
	if err != nil {
		h.log.Error("failed to list instruments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instruments."})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Featured handles GET /api/instruments/featured.
func (h *InstrumentHandler) Featured(c *gin.Context) {
	var entries []featuredEntry
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.Instrument{}).
		Select("slug, name, featured_image, image_url, audio_teaser").
		Where("featured = ?", true).
		Order("display_order ASC").
		Find(&entries).Error
	if err != nil {
		h.log.Error("failed to list featured instruments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured instruments."})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Get handles GET /api/instruments/:slug, returning one instrument with
// its videos and moods in display order.
func (h *InstrumentHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	var inst models.Instrument
	err := h.db.WithContext(c.Request.Context()).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Preload("Moods", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Where("slug = ?", slug).
		First(&inst).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found."})
			return
		}
		h.log.Error("failed to fetch instrument", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instrument."})
		return
	}

	// Children marshal without ids; empty lists stay [] rather than null.
	if inst.Videos == nil {
		inst.Videos = []models.InstrumentVideo{}
	}
	if inst.Moods == nil {
		inst.Moods = []models.InstrumentMood{}
	}
	c.JSON(http.StatusOK, inst)
}

type videoInput struct {
	Label       string `json:"label"`
	VideoType   string `json:"video_type"`
	Src         string `json:"src"`
	Poster      string `json:"poster"`
	AspectRatio string `json:"aspect_ratio"`
}

type moodInput struct {
	Label     string `json:"label"`
	AudioFile string `json:"audio_file"`
}

type createInstrumentInput struct {
	Slug           string       `json:"slug"`
	Name           string       `json:"name"`
	OriginPrefix   string       `json:"origin_prefix"`
	Tagline        string       `json:"tagline"`
	SEOTitle       string       `json:"seo_title"`
	SEODescription string       `json:"seo_description"`
	AboutHTML      string       `json:"about_html"`
	MoodsIntro     string       `json:"moods_intro"`
	ImageURL       string       `json:"image_url"`
	ImageAlt       string       `json:"image_alt"`
	AudioTeaser    string       `json:"audio_teaser"`
	Featured       bool         `json:"featured"`
	FeaturedImage  string       `json:"featured_image"`
	DisplayOrder   int          `json:"display_order"`
	PageReady      *bool        `json:"page_ready"`
	Videos         []videoInput `json:"videos"`
	Moods          []moodInput  `json:"moods"`
}

// Create handles POST /api/instruments (admin).
func (h *InstrumentHandler) Create(c *gin.Context) {
	var input createInstrumentInput
	if err := json.NewDecoder(c.Request.Body).Decode(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}
	if input.Slug == "" || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug and name are required."})
		return
	}

	pageReady := true
	if input.PageReady != nil {
		pageReady = *input.PageReady
	}

	inst := models.Instrument{
		Slug:           input.Slug,
		Name:           input.Name,
		OriginPrefix:   input.OriginPrefix,
		Tagline:        input.Tagline,
		SEOTitle:       input.SEOTitle,
		SEODescription: input.SEODescription,
		AboutHTML:      input.AboutHTML,
		MoodsIntro:     input.MoodsIntro,
		ImageURL:       input.ImageURL,
		ImageAlt:       input.ImageAlt,
		AudioTeaser:    input.AudioTeaser,
		Featured:       input.Featured,
		FeaturedImage:  input.FeaturedImage,
		DisplayOrder:   input.DisplayOrder,
		PageReady:      pageReady,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Instrument{}).Where("slug = ?", input.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errSlugTaken
		}

		if err := tx.Create(&inst).Error; err != nil {
			return err
		}
		if err := insertVideos(tx, inst.ID, input.Videos); err != nil {
			return err
		}
		return insertMoods(tx, inst.ID, input.Moods)
	})
	if err != nil {
		if errors.Is(err, errSlugTaken) || isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "An instrument with that slug already exists."})
			return
		}
		h.log.Error("failed to create instrument", zap.String("slug", input.Slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create instrument."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": inst.ID})
}

type updateInstrumentInput struct {
	Name           *string       `json:"name"`
	OriginPrefix   *string       `json:"origin_prefix"`
	Tagline        *string       `json:"tagline"`
	SEOTitle       *string       `json:"seo_title"`
	SEODescription *string       `json:"seo_description"`
	AboutHTML      *string       `json:"about_html"`
	MoodsIntro     *string       `json:"moods_intro"`
	ImageURL       *string       `json:"image_url"`
	ImageAlt       *string       `json:"image_alt"`
	AudioTeaser    *string       `json:"audio_teaser"`
	Featured       *bool         `json:"featured"`
	FeaturedImage  *string       `json:"featured_image"`
	DisplayOrder   *int          `json:"display_order"`
	PageReady      *bool         `json:"page_ready"`
	Videos         *[]videoInput `json:"videos"`
	Moods          *[]moodInput  `json:"moods"`
}

// Update handles PUT /api/instruments/:slug (admin). Provided fields merge
// over the stored row; a provided child array replaces that child list
// wholesale. Everything runs in one transaction so a mid-sequence failure
// never leaves a half-replaced list.
func (h *InstrumentHandler) Update(c *gin.Context) {
	slug := c.Param("slug")

	var input updateInstrumentInput
	if err := json.NewDecoder(c.Request.Body).Decode(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var inst models.Instrument
		if err := tx.Where("slug = ?", slug).First(&inst).Error; err != nil {
			return err
		}

		applyField(&inst.Name, input.Name)
		applyField(&inst.OriginPrefix, input.OriginPrefix)
		applyField(&inst.Tagline, input.Tagline)
		applyField(&inst.SEOTitle, input.SEOTitle)
		applyField(&inst.SEODescription, input.SEODescription)
		applyField(&inst.AboutHTML, input.AboutHTML)
		applyField(&inst.MoodsIntro, input.MoodsIntro)
		applyField(&inst.ImageURL, input.ImageURL)
		applyField(&inst.ImageAlt, input.ImageAlt)
		applyField(&inst.AudioTeaser, input.AudioTeaser)
		applyField(&inst.Featured, input.Featured)
		applyField(&inst.FeaturedImage, input.FeaturedImage)
		applyField(&inst.DisplayOrder, input.DisplayOrder)
		applyField(&inst.PageReady, input.PageReady)

		if err := tx.Save(&inst).Error; err != nil {
			return err
		}

		if input.Videos != nil {
			if err := tx.Where("instrument_id = ?", inst.ID).Delete(&models.InstrumentVideo{}).Error; err != nil {
				return err
			}
			if err := insertVideos(tx, inst.ID, *input.Videos); err != nil {
				return err
			}
		}
		if input.Moods != nil {
			if err := tx.Where("instrument_id = ?", inst.ID).Delete(&models.InstrumentMood{}).Error; err != nil {
				return err
			}
			if err := insertMoods(tx, inst.ID, *input.Moods); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found."})
			return
		}
		h.log.Error("failed to update instrument", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update instrument."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /api/instruments/:slug (admin). Children are
// removed explicitly rather than relying on the FK cascade, which the
// sqlite test driver does not enforce by default.
func (h *InstrumentHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var inst models.Instrument
		if err := tx.Where("slug = ?", slug).First(&inst).Error; err != nil {
			return err
		}
		if err := tx.Where("instrument_id = ?", inst.ID).Delete(&models.InstrumentVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("instrument_id = ?", inst.ID).Delete(&models.InstrumentMood{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inst).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found."})
			return
		}
		h.log.Error("failed to delete instrument", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete instrument."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func insertVideos(tx *gorm.DB, instrumentID uint, inputs []videoInput) error {
	for i, v := range inputs {
		videoType := v.VideoType
		if videoType == "" {
			videoType = "video"
		}
		aspectRatio := v.AspectRatio
		if aspectRatio == "" {
			aspectRatio = "16 / 9"
		}
		video := models.InstrumentVideo{
			InstrumentID: instrumentID,
			Label:        v.Label,
			VideoType:    videoType,
			Src:          v.Src,
			Poster:       v.Poster,
			AspectRatio:  aspectRatio,
			DisplayOrder: i,
		}
		if err := tx.Create(&video).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertMoods(tx *gorm.DB, instrumentID uint, inputs []moodInput) error {
	for i, m := range inputs {
		mood := models.InstrumentMood{
			InstrumentID: instrumentID,
			Label:        m.Label,
			AudioFile:    m.AudioFile,
			DisplayOrder: i,
		}
		if err := tx.Create(&mood).Error; err != nil {
			return err
		}
	}
	return nil
}

func applyField[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
