package tests

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/auth/register", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
		"phone":    "9876543210",
	}, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["user"])
}

func TestRegisterValidation(t *testing.T) {
	// password below the minimum length
	resp, _ := doRequest(t, "POST", "/api/auth/register", map[string]string{
		"username": "shortpw",
		"email":    "shortpw@example.com",
		"password": "short",
	}, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// duplicate username
	resp, _ = doRequest(t, "POST", "/api/auth/register", map[string]string{
		"username": "testuser",
		"email":    "other@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/auth/login", map[string]string{
		"username": "testuser",
		"password": "password",
	}, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["user"])
}

func TestLoginWrongPassword(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/auth/login", map[string]string{
		"username": "testuser",
		"password": "wrong",
	}, "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	resp, result := doRequest(t, "GET", "/api/user/profile", nil, jwtToken)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "testuser", result["username"])
	assert.Equal(t, "test@example.com", result["email"])
}

func TestProfileRequiresAuth(t *testing.T) {
	resp, _ := doRequest(t, "GET", "/api/user/profile", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
