package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/milletmart/milletmart-api/initializers"
	"github.com/milletmart/milletmart-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

type ProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity uint            `json:"stockQuantity"`
	Category      string          `json:"category" binding:"required,oneof=grain flour snack ready_to_eat other"`
	IsOrganic     bool            `json:"isOrganic"`
	IsAvailable   *bool           `json:"isAvailable"`
}

// CreateProduct adds a catalog entry owned by the calling farmer. Ownership
// comes from the token, never from the request body.
func CreateProduct(ctx *gin.Context) {
	farmerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationErrors(ctx, err)
		return
	}
	if input.Price.IsNegative() {
		sendErrorResponse(ctx, http.StatusBadRequest, "price must not be negative")
		return
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	product := models.Product{
		FarmerID:      farmerID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		Category:      input.Category,
		IsOrganic:     input.IsOrganic,
		IsAvailable:   available,
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// GetProducts lists available catalog entries with search, category filter
// and pagination.
func GetProducts(ctx *gin.Context) {
	var products []models.Product

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	offset := (page - 1) * limit

	query := initializers.DB.Model(&models.Product{}).Where("is_available = ?", true)

	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	// The total has to reflect the same filters as the page itself.
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	result := query.Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.First(&product, productID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func uploadFileToS3(file *multipart.FileHeader, keyPrefix string) (string, error) {
	uploader, err := getAWSUploader()
	if err != nil {
		return "", err
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file %s: %w", file.Filename, err)
	}
	defer f.Close()

	key := fmt.Sprintf("%s/%s%s", keyPrefix, uuid.NewString(), filepath.Ext(file.Filename))
	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}

	return result.Location, nil
}

// UploadProductImage uploads an image to S3 and stores the reference on the
// product. Only the owning farmer may attach an image.
func UploadProductImage(ctx *gin.Context) {
	farmerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}
	if product.FarmerID != farmerID {
		sendErrorResponse(ctx, http.StatusForbidden, "You do not own this product")
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file uploaded", nil)
		return
	}

	url, err := uploadFileToS3(file, "products")
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	result := initializers.DB.Model(&product).Update("image_url", url)
	if result.Error != nil {
		log.Printf("Error saving image to database: %v", result.Error)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save image reference", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}
