package validator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type createEventForm struct {
	Title    string    `validate:"required,max=255"`
	Date     time.Time `validate:"required,future"`
	Capacity int       `validate:"required,positive"`
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	valid := createEventForm{
		Title:    "Go Meetup",
		Date:     time.Now().Add(24 * time.Hour),
		Capacity: 50,
	}

	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, Validate(ctx, valid))
	})

	t.Run("missing title", func(t *testing.T) {
		form := valid
		form.Title = ""
		err := Validate(ctx, form)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), ErrFieldRequired)
	})

	t.Run("past date", func(t *testing.T) {
		form := valid
		form.Date = time.Now().Add(-time.Hour)
		err := Validate(ctx, form)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		form := valid
		form.Capacity = -3
		err := Validate(ctx, form)
		assert.Error(t, err)
	})
}
