package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestObject(t *testing.T) {
	t.Parallel()

	v := validator.New()
	address := validator.NewSchema().
		Field("city", validator.Rules().Required().IsString()).
		Field("zip", validator.Rules().Required().Length(5, 5))
	schema := validator.NewSchema().Field("shipping", validator.Rules().Object(v, address))

	t.Run("prefixes nested paths", func(t *testing.T) {
		err := v.Validate(context.Background(), schema, validator.Model{
			"shipping": map[string]any{"zip": "123"},
		}, nil)

		failures := validator.ExtractValidationErrors(err)
		require.Len(t, failures, 2)
		assert.Equal(t, []string{"shipping.city", "shipping.zip"}, failures.Fields())
	})

	t.Run("rejects non objects", func(t *testing.T) {
		for _, value := range []any{"x", []any{map[string]any{}}, 1} {
			err := v.Validate(context.Background(), schema, validator.Model{"shipping": value}, nil)
			failures := validator.ExtractValidationErrors(err)
			require.Len(t, failures, 1, "%#v", value)
			assert.Equal(t, validator.KindObject, failures[0].Rule)
			assert.Equal(t, "shipping", failures[0].Field)
		}
	})

	t.Run("absent object is skipped", func(t *testing.T) {
		assert.NoError(t, v.Validate(context.Background(), schema, validator.Model{}, nil))
	})
}

func TestArray(t *testing.T) {
	t.Parallel()

	v := validator.New()

	t.Run("array of objects reports indexed paths", func(t *testing.T) {
		schema := validator.NewSchema().Field("items", validator.Rules().Array(v,
			validator.Rules().Object(v, validator.NewSchema().Field("id", validator.Rules().Required())),
		))

		err := v.Validate(context.Background(), schema, validator.Model{
			"items": []any{map[string]any{"id": nil}},
		}, nil)

		failures := validator.ExtractValidationErrors(err)
		require.Len(t, failures, 1)
		assert.Equal(t, "items.0.id", failures[0].Field)
		assert.Equal(t, validator.KindRequired, failures[0].Rule)
	})

	t.Run("applies rules to every element", func(t *testing.T) {
		schema := validator.NewSchema().Field("tags", validator.Rules().Array(v, validator.Rules().IsString().Length(1, 3)))

		err := v.Validate(context.Background(), schema, validator.Model{
			"tags": []any{"ok", 5, "toolong", "a"},
		}, nil)

		failures := validator.ExtractValidationErrors(err)
		require.Len(t, failures, 2)
		assert.Equal(t, []string{"tags.1", "tags.2"}, failures.Fields())
		assert.Equal(t, validator.KindString, failures[0].Rule)
		assert.Equal(t, validator.KindLength, failures[1].Rule)
	})

	t.Run("rejects non arrays", func(t *testing.T) {
		schema := validator.NewSchema().Field("tags", validator.Rules().Array(v, validator.Rules().IsString()))

		err := v.Validate(context.Background(), schema, validator.Model{"tags": map[string]any{}}, nil)
		failures := validator.ExtractValidationErrors(err)
		require.Len(t, failures, 1)
		assert.Equal(t, validator.KindArray, failures[0].Rule)
	})

	t.Run("empty array passes", func(t *testing.T) {
		schema := validator.NewSchema().Field("tags", validator.Rules().Array(v, validator.Rules().Required()))
		assert.NoError(t, v.Validate(context.Background(), schema, validator.Model{"tags": []any{}}, nil))
	})

	t.Run("relational rules resolve siblings inside elements", func(t *testing.T) {
		schema := validator.NewSchema().Field("orderItems", validator.Rules().Array(v,
			validator.Rules().Object(v, validator.NewSchema().
				Field("productId", validator.Rules().Exists("products", validator.Match("productId", "id"))),
			),
		))
		data := validator.DataContext{"products": validator.Eager(validator.Record{"id": "p1"})}

		err := v.Validate(context.Background(), schema, validator.Model{
			"orderItems": []any{
				map[string]any{"productId": "p1"},
				map[string]any{"productId": "p9"},
			},
		}, data)

		failures := validator.ExtractValidationErrors(err)
		require.Len(t, failures, 1)
		assert.Equal(t, "orderItems.1.productId", failures[0].Field)
		assert.Equal(t, validator.KindExists, failures[0].Rule)
	})
}
