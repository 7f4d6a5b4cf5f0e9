package controllers

import (
	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContactController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewContactController(db *gorm.DB, cfg *config.Config) *ContactController {
	return &ContactController{DB: db, Cfg: cfg}
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required"`
}

// SubmitContact godoc
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param input body ContactRequest true "Contact message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /contact [post]
func (cc *ContactController) SubmitContact(c *fiber.Ctx) error {
	var input ContactRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	contact := models.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := cc.DB.Create(&contact).Error; err != nil {
		return utils.InternalServerError(c, "Could not save message")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Your message has been sent successfully",
	})
}
