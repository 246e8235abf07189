package controllers

import (
	"context"
	"mime/multipart"

	"uninest/config"
	"uninest/response"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
)

const maxUploadSize = 5 << 20 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func validateImageFile(file *multipart.FileHeader) string {
	if file.Size > maxUploadSize {
		return "File exceeds the 5 MB limit"
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "Only jpeg, png and webp images are accepted"
	}
	return ""
}

func uploadToCloudinary(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	resp, err := config.Cloudinary.Upload.Upload(context.Background(), src, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

// UploadImage handles POST /img/upload, a single image.
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}
	if msg := validateImageFile(file); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	url, err := uploadToCloudinary(file, "avatars")
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, gin.H{"url": url})
}

// UploadImages handles POST /img/multi-upload, a batch of images.
func UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "No files provided")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.BadRequest(c, "No files provided")
		return
	}

	for _, file := range files {
		if msg := validateImageFile(file); msg != "" {
			response.BadRequest(c, msg)
			return
		}
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := uploadToCloudinary(file, "hostels")
		if err != nil {
			response.ServerError(c)
			return
		}
		urls = append(urls, url)
	}
	response.Success(c, gin.H{"urls": urls})
}
