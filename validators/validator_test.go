package validators

import (
	"testing"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.CreatePostRequest{
		Title: "Hello World Example",
		Body:  "Long enough body",
	}))

	err := v.Validate(&models.CreatePostRequest{Title: "Hi", Body: ""})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "title must be at least 5 characters")
		assert.Contains(t, err.Error(), "body is required")
	}

	err = v.Validate(&models.RegisterRequest{Username: "bob", Email: "not-an-email", Password: "secret1"})
	assert.EqualError(t, err, "email must be a valid email address")

	zero := uint(0)
	err = v.Validate(&models.UpdatePostRequest{Title: "Valid title", Body: "Valid body text", CategoryID: &zero})
	assert.EqualError(t, err, "category_id must be at least 1")
}
