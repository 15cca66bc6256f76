package handler

import (
	"warbler/backend/pkg/log"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// notblank rejects strings made only of whitespace, which required lets through.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		log.L.Fatal("register notblank validator", zap.Error(err))
	}
}
