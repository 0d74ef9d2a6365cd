package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/turtlemeow87-design/tradscendence-site/internal/storage"
	"github.com/turtlemeow87-design/tradscendence-site/internal/utils"
)

// AssetHandler stores the audio clips and imagery the catalog pages
// reference. Admin only.
type AssetHandler struct {
	storage *storage.Client
	log     *zap.Logger
}

func NewAssetHandler(st *storage.Client, log *zap.Logger) *AssetHandler {
	return &AssetHandler{storage: st, log: log}
}

// Upload handles POST /api/assets (multipart). Audio goes under audio/,
// images under images/. For audio we sniff the embedded title so the
// admin UI can prefill a mood label.
func (h *AssetHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	var prefix string
	switch {
	case strings.HasPrefix(contentType, "audio/"):
		prefix = "audio/"
	case strings.HasPrefix(contentType, "image/"):
		prefix = "images/"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only audio and image uploads are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to open file"})
		return
	}
	defer file.Close()

	label := ""
	if prefix == "audio/" {
		if meta, err := tag.ReadFrom(file); err == nil {
			label = meta.Title()
		}
		if _, err := file.Seek(0, 0); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read file"})
			return
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := prefix + utils.SanitizeKey(utils.BaseName(fileHeader.Filename), "asset") + ext

	if err := h.storage.UploadAsset(key, file, contentType); err != nil {
		h.log.Error("asset upload failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key":   key,
		"url":   h.storage.PublicURL(key),
		"label": label,
	})
}

// List handles GET /api/assets?prefix=audio/.
func (h *AssetHandler) List(c *gin.Context) {
	prefix := c.Query("prefix")

	keys, err := h.storage.ListAssets(prefix)
	if err != nil {
		h.log.Error("asset listing failed", zap.String("prefix", prefix), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assets"})
		return
	}

	assets := make([]gin.H, 0, len(keys))
	for _, key := range keys {
		assets = append(assets, gin.H{"key": key, "url": h.storage.PublicURL(key)})
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// Delete handles DELETE /api/assets/*key.
func (h *AssetHandler) Delete(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Asset key is required"})
		return
	}

	if err := h.storage.DeleteAsset(key); err != nil {
		h.log.Error("asset delete failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
