package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/storage"
)

const maxImageSize = 4 << 20 // 4MB ceiling, matched by the client

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

/*
POST /admin/upload
- multipart "image" field; extension allowlist plus a server-side MIME sniff
- returns the public URL from the storage driver
*/
func UploadImage(uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/upload"
		defer handlePanic(c, route)

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file is required")
			return
		}

		extension := strings.ToLower(filepath.Ext(file.Filename))
		expectedType, ok := allowedImageExtensions[extension]
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, fmt.Sprintf("unsupported image type: %s", extension))
			return
		}
		if file.Size > maxImageSize {
			respondWithError(c, http.StatusBadRequest, route, "image file too large (max 4MB)")
			return
		}

		in, err := file.Open()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not read upload")
			return
		}
		defer in.Close()

		data, err := io.ReadAll(io.LimitReader(in, maxImageSize+1))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not read upload")
			return
		}
		if len(data) > maxImageSize {
			respondWithError(c, http.StatusBadRequest, route, "image file too large (max 4MB)")
			return
		}

		// Content sniffing catches renamed non-image files.
		detected := http.DetectContentType(data)
		if !strings.HasPrefix(detected, "image/") {
			respondWithError(c, http.StatusBadRequest, route, "uploaded file is not an image")
			return
		}

		key := "products/" + primitive.NewObjectID().Hex() + extension
		url, err := uploader.Upload(c.Request.Context(), key, data, expectedType)
		if err != nil {
			log.Printf("[%s] upload failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		log.Printf("[%s] stored %s (%d bytes)", route, key, len(data))
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
