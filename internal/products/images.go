package products

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	repo      *Repo
	uploadDir string
}

func NewImageHandler(repo *Repo, uploadDir string) *ImageHandler {
	return &ImageHandler{repo: repo, uploadDir: uploadDir}
}

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AdminUpload stores a product image on disk and records its public path.
func (h *ImageHandler) AdminUpload(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	name := fmt.Sprintf("product-%d-%d%s", productID, time.Now().UnixMilli(), ext)
	dst := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	publicPath := "/uploads/" + name
	if err := h.repo.SetImage(c.Request.Context(), productID, publicPath); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update product image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": publicPath})
}
