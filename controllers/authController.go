package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/milletmart/milletmart-api/initializers"
	"github.com/milletmart/milletmart-api/models"
	"github.com/milletmart/milletmart-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user with this email or username already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid username or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgRegistrationSuccess   = "Registration successful!"
	msgLoggedOut             = "You have been logged out."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// sendValidationErrors surfaces every failed field individually rather than
// collapsing the form into one message.
func sendValidationErrors(ctx *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	errorList := make([]gin.H, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		errorList = append(errorList, gin.H{
			"field":   fieldErr.Field(),
			"message": validationMessage(fieldErr),
		})
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidInput, "errors": errorList})
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fieldErr.Param() + " characters"
	case "gte":
		return "must be at least " + fieldErr.Param()
	case "oneof":
		return "must be one of: " + fieldErr.Param()
	default:
		return "is invalid"
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"jti":      uuid.NewString(),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func currentClaims(ctx *gin.Context) jwt.MapClaims {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return nil
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// currentUserID reads the authenticated user's ID out of the JWT claims set
// by RequireAuth.
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := currentClaims(ctx)
	if claims == nil {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}

func checkUserExists(email, username string) (bool, error) {
	var existingUser models.User
	result := initializers.DB.Where("email = ? OR username = ?", email, username).Find(&existingUser)
	return result.RowsAffected > 0, result.Error
}

func dashboardRoute(role string) string {
	if role == models.RoleFarmer {
		return "/farmer/dashboard"
	}
	return "/consumer/dashboard"
}

type FarmerSignupData struct {
	Username     string  `json:"username" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Phone        string  `json:"phone" binding:"required"`
	FarmLocation string  `json:"farmLocation" binding:"required"`
	FarmSize     float64 `json:"farmSize"`
}

type ConsumerSignupData struct {
	Username          string   `json:"username" binding:"required"`
	Email             string   `json:"email" binding:"required,email"`
	Password          string   `json:"password" binding:"required,min=8"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Phone             string   `json:"phone" binding:"required"`
	Age               int      `json:"age" binding:"required,gte=1"`
	HealthPreferences []string `json:"healthPreferences"`
}

// RegisterFarmer creates a farmer account with its profile, then logs the
// new user straight in.
func RegisterFarmer(ctx *gin.Context) {
	var signUpData FarmerSignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	exists, err := checkUserExists(signUpData.Email, signUpData.Username)
	if err != nil {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Username:  signUpData.Username,
		Email:     signUpData.Email,
		FirstName: signUpData.FirstName,
		LastName:  signUpData.LastName,
		Phone:     signUpData.Phone,
		Password:  hashedPassword,
		Role:      models.RoleFarmer,
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.FarmerProfile{
			UserID:       user.ID,
			FarmLocation: signUpData.FarmLocation,
			FarmSize:     signUpData.FarmSize,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		log.Println("Farmer creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	finishRegistration(ctx, user)
}

// RegisterConsumer creates a consumer account with its profile and an empty
// cart, then logs the new user straight in.
func RegisterConsumer(ctx *gin.Context) {
	var signUpData ConsumerSignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	exists, err := checkUserExists(signUpData.Email, signUpData.Username)
	if err != nil {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	preferences, err := json.Marshal(signUpData.HealthPreferences)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user := models.User{
		Username:  signUpData.Username,
		Email:     signUpData.Email,
		FirstName: signUpData.FirstName,
		LastName:  signUpData.LastName,
		Phone:     signUpData.Phone,
		Password:  hashedPassword,
		Role:      models.RoleConsumer,
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.ConsumerProfile{
			UserID:            user.ID,
			Age:               signUpData.Age,
			HealthPreferences: datatypes.JSON(preferences),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		cart := models.Cart{ConsumerID: user.ID}
		return tx.Create(&cart).Error
	})
	if err != nil {
		log.Println("Consumer creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	finishRegistration(ctx, user)
}

func finishRegistration(ctx *gin.Context, user models.User) {
	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	if err := utils.SendWelcomeEmail(user); err != nil {
		log.Println("Error sending welcome email:", err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":  msgRegistrationSuccess,
		"token":    tokenString,
		"role":     user.Role,
		"redirect": dashboardRoute(user.Role),
	})
}

// Login authenticates by username or email. Failures stay generic so the
// response does not reveal which of the two inputs was wrong.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	var user models.User
	result := initializers.DB.
		Where("username = ? OR email = ?", loginData.Username, loginData.Username).
		First(&user)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"token":    tokenString,
		"role":     user.Role,
		"redirect": dashboardRoute(user.Role),
	})
}

// Logout denylists the token's JTI for its remaining lifetime. Without Redis
// the token simply ages out on its own.
func Logout(ctx *gin.Context) {
	claims := currentClaims(ctx)
	if claims == nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	if initializers.Redis != nil {
		jti, _ := claims["jti"].(string)
		exp, _ := claims["exp"].(float64)
		ttl := time.Until(time.Unix(int64(exp), 0))
		if jti != "" && ttl > 0 {
			err := initializers.Redis.Set(ctx.Request.Context(), "denylist:"+jti, "1", ttl).Err()
			if err != nil {
				log.Println("Failed to denylist token:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
				return
			}
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut})
}

func GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	result := initializers.DB.
		Preload("FarmerProfile").
		Preload("ConsumerProfile").
		First(&user, userID)
	if result.Error != nil {
		log.Println("Profile fetch error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

// UploadProfilePicture stores the picture in S3 and keeps only the returned
// reference on the user record.
func UploadProfilePicture(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	file, err := ctx.FormFile("picture")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}

	url, err := uploadFileToS3(file, "profile-pics")
	if err != nil {
		log.Println("Profile picture upload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload picture")
		return
	}

	result := initializers.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_picture_url", url)
	if result.Error != nil {
		log.Println("Profile picture save error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"url": url})
}
