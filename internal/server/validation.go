package server

import (
	"strings"
	"sync"

	"playlist-rater/internal/code"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("admin_code", codeValidator(code.Admin))
		_ = engine.RegisterValidation("player_code", codeValidator(code.Player))
		_ = engine.RegisterValidation("invite_code", codeValidator(code.Invite))
		_ = engine.RegisterValidation("any_code", codeValidator(code.Any))
		_ = engine.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

func codeValidator(kind code.Kind) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return code.Valid(kind, fl.Field().String())
	}
}
