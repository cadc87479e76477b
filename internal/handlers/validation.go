package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("language", validateLanguage)
}

// validateLanguage accepts any spelling ParseLanguage understands.
func validateLanguage(fl validator.FieldLevel) bool {
	_, err := models.ParseLanguage(fl.Field().String())
	return err == nil
}

type signupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type onboardingRequest struct {
	FullName         string `json:"fullName" validate:"required"`
	Bio              string `json:"bio" validate:"required"`
	NativeLanguage   string `json:"nativeLanguage" validate:"required,language"`
	LearningLanguage string `json:"learningLanguage" validate:"required,language"`
	Location         string `json:"location" validate:"required"`
	ProfilePic       string `json:"profilePic" validate:"omitempty,url"`
}

type learningLanguageRequest struct {
	LearningLanguage string `json:"learningLanguage" validate:"required,language"`
}

// decodeAndValidate reads a JSON body into dst and runs struct validation. On failure it
// writes a 400 with the first problem found and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.WithError(err).Warn("Failed to decode request body")
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			respondJSON(w, http.StatusBadRequest, validationResponse(verrs))
			return false
		}
		log.WithError(err).Error("Validator failed")
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

type validationErrorResponse struct {
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields,omitempty"`
}

func validationResponse(verrs validator.ValidationErrors) validationErrorResponse {
	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return validationErrorResponse{Message: "All fields are required", MissingFields: missing}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return validationErrorResponse{Message: "Invalid email format"}
	case "min":
		if fe.Field() == "password" {
			return validationErrorResponse{Message: "Password must be at least 6 characters"}
		}
	case "language":
		return validationErrorResponse{Message: fmt.Sprintf("Unsupported language: %v", fe.Value())}
	}
	return validationErrorResponse{Message: "Invalid " + fe.Field()}
}
