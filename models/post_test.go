package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatePostRequest_Changes(t *testing.T) {
	t.Run("Should return no changes for an empty patch", func(t *testing.T) {
		req := UpdatePostRequest{}

		assert.Empty(t, req.Changes())
	})

	t.Run("Should only include fields present in the patch", func(t *testing.T) {
		published := false
		req := UpdatePostRequest{Published: &published}

		assert.Equal(t, map[string]any{"published": false}, req.Changes())
	})

	t.Run("Should include every provided field", func(t *testing.T) {
		title, body, published := "T", "B", true
		req := UpdatePostRequest{Title: &title, Body: &body, Published: &published}

		assert.Equal(t, map[string]any{"title": "T", "body": "B", "published": true}, req.Changes())
	})
}

func TestListPostsQuery_Resolve(t *testing.T) {
	t.Run("Should default to published posts and a limit of five", func(t *testing.T) {
		isPublished, limit := (&ListPostsQuery{}).Resolve()

		assert.True(t, isPublished)
		assert.Equal(t, 5, limit)
	})

	t.Run("Should use explicit values", func(t *testing.T) {
		p, l := false, 0
		isPublished, limit := (&ListPostsQuery{IsPublished: &p, Limit: &l}).Resolve()

		assert.False(t, isPublished)
		assert.Equal(t, 0, limit)
	})
}
