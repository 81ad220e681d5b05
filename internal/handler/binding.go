package handler

import (
	"newswire/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("accessmode", func(fl validator.FieldLevel) bool {
			return model.AccessMode(fl.Field().String()).Valid()
		})
	}
}

type CreateAPIKeyRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	AccessMode string `json:"access_mode" binding:"omitempty,accessmode"`
}

type CreateSavedSearchRequest struct {
	Name    string              `json:"name" binding:"required,min=1,max=100"`
	Request model.SearchRequest `json:"request"`
}
