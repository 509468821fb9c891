package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

// uploadForm is the multipart form accompanying an image file.
type uploadForm struct {
	UnitID       string `form:"unitId"`
	ImageType    string `form:"imageType"`
	Title        string `form:"title" binding:"max=255"`
	Caption      string `form:"caption"`
	AltText      string `form:"altText" binding:"max=255"`
	DisplayOrder *int   `form:"displayOrder" binding:"omitempty,gte=0"`
	IsPrimary    bool   `form:"isPrimary"`
	IsFeatured   bool   `form:"isFeatured"`
}

func (h *PropertyHandler) ListImages(c *gin.Context) {
	images, err := h.svc.ListImages(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "count": len(images)})
}

// UploadImage handles POST /properties/:id/images with a multipart "file" part.
func (h *PropertyHandler) UploadImage(c *gin.Context) {
	var form uploadForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, fmt.Errorf("file: %w", err))
		return
	}
	data, err := readPart(fh)
	if err != nil {
		badRequest(c, fmt.Errorf("file: %w", err))
		return
	}

	img, err := h.svc.UploadImage(c.Request.Context(), c.Param("id"), callerID(c), catalog.ImageUpload{
		UnitID:       form.UnitID,
		Filename:     fh.Filename,
		Data:         data,
		Type:         models.ImageType(form.ImageType),
		Title:        form.Title,
		Caption:      form.Caption,
		AltText:      form.AltText,
		DisplayOrder: form.DisplayOrder,
		IsPrimary:    form.IsPrimary,
		IsFeatured:   form.IsFeatured,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// batchForm accompanies the "files" parts of a batch upload.
type batchForm struct {
	UnitID    string `form:"unitId"`
	ImageType string `form:"imageType"`
}

type batchResult struct {
	Index    int    `json:"index"`
	Filename string `json:"filename,omitempty"`
	ImageID  string `json:"imageId,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadImages handles POST /properties/:id/images/batch with repeated "files" parts.
// Each file succeeds or fails on its own.
func (h *PropertyHandler) UploadImages(c *gin.Context) {
	var form batchForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	kind := models.ImageType(form.ImageType)
	if kind == "" {
		kind = models.ImageTypeInterior
	}
	mf, err := c.MultipartForm()
	if err != nil {
		badRequest(c, fmt.Errorf("files: %w", err))
		return
	}

	var uploads []catalog.ImageUpload
	for _, fh := range mf.File["files"] {
		data, err := readPart(fh)
		if err != nil {
			badRequest(c, fmt.Errorf("files: %w", err))
			return
		}
		if len(data) == 0 {
			continue
		}
		uploads = append(uploads, catalog.ImageUpload{
			UnitID:   form.UnitID,
			Filename: fh.Filename,
			Data:     data,
			Type:     kind,
		})
	}

	items, err := h.svc.UploadImages(c.Request.Context(), c.Param("id"), callerID(c), uploads)
	if err != nil {
		respondError(c, err)
		return
	}
	results := make([]batchResult, len(items))
	urls := make(map[string]string)
	failed := 0
	for i, item := range items {
		results[i] = batchResult{Index: item.Index, Filename: item.Filename}
		if item.Err != nil {
			results[i].Error = publicMessage(item.Err)
			failed++
			continue
		}
		results[i].ImageID = item.Image.ID
		results[i].URL = item.Image.URL
		urls[fmt.Sprintf("image_%d", item.Index)] = item.Image.URL
	}
	status := http.StatusOK
	if failed == len(items) {
		status = statusFor(items[0].Err)
	}
	c.JSON(status, gin.H{
		"uploadedImages": urls,
		"results":        results,
		"uploaded":       len(items) - failed,
		"failed":         failed,
	})
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *PropertyHandler) DeleteImage(c *gin.Context) {
	if err := h.svc.DeleteImage(c.Request.Context(), c.Param("id"), c.Param("imageId"), callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PropertyHandler) SetPrimaryImage(c *gin.Context) {
	img, err := h.svc.SetPrimaryImage(c.Request.Context(), c.Param("id"), c.Param("imageId"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}
